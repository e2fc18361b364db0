package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/streamgate-io/sdk-go/apiclient"
	"github.com/streamgate-io/sdk-go/internal/config"
	"github.com/streamgate-io/sdk-go/platform"
	"github.com/streamgate-io/sdk-go/token/dataaccess"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("token fetch failed")
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()

	platformName := flag.String("platform", c.GetPlatform(), "target platform (prod, prod-eu, staging, dev, poc)")
	tenant := flag.String("tenant", c.GetTenant(), "tenant name")
	clientID := flag.String("client-id", uuid.NewString(), "external client identifier the token is bound to")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	setupLogging(c.GetLogLevel())
	displayAppname(c.GetAppName())

	p, err := platform.Parse(*platformName)
	if err != nil {
		return err
	}
	if *tenant == "" {
		return errors.New("no tenant given, set -tenant or STREAMGATE_TENANT")
	}
	apiKey := c.GetAPIKey()
	if apiKey == "" {
		return errors.New("no API key given, set STREAMGATE_API_KEY")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fetcher := apiclient.New(p, apiKey)
	dataToken, err := fetcher.GetOrFetchDataAccessToken(ctx, dataaccess.NewRequest(*tenant, *clientID))
	if err != nil {
		return err
	}

	log.Info().
		Str("tenant", dataToken.TenantID).
		Str("client_id", dataToken.ClientID).
		Str("endpoint", dataToken.Endpoint).
		Int("port_mqtt", dataToken.PortMQTT()).
		Int("port_wss", dataToken.PortWSS()).
		Time("expires", time.Unix(dataToken.Expiry(), 0)).
		Msg("data access token issued")
	fmt.Println(dataToken.Raw())
	return nil
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
