package config

import "os"

const (
	appNameVar      = "APP_NAME"
	platformVar     = "STREAMGATE_PLATFORM"
	tenantVar       = "STREAMGATE_TENANT"
	apiKeyVar       = "STREAMGATE_API_KEY"
	clientSecretVar = "STREAMGATE_CLIENT_SECRET"
	logLevelVar     = "LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "StreamGate Token Fetch")
}

// GetPlatform returns the target platform name (e.g. "prod", "staging").
func (EnvVars) GetPlatform() string {
	return GetEnv(platformVar, "dev")
}

func (EnvVars) GetTenant() string {
	return GetEnv(tenantVar, "")
}

func (EnvVars) GetAPIKey() string {
	return GetEnv(apiKeyVar, "")
}

// GetClientSecret returns the OAuth client secret for the management API.
func (EnvVars) GetClientSecret() string {
	return GetEnv(clientSecretVar, "")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
