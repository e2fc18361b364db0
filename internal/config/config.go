// Package config reads SDK settings from the environment.
package config

// Config exposes the environment-derived settings the SDK and its tooling
// consume.
type Config interface {
	EnvConfig
}

// EnvConfig is the environment-variable backed part of Config.
type EnvConfig interface {
	GetAppName() string
	GetPlatform() string
	GetTenant() string
	GetAPIKey() string
	GetClientSecret() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
