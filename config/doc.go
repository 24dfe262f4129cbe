// Package config loads gorest configuration from YAML files, .env files
// and environment variables using viper and godotenv.
//
//	cfg, err := config.Load("gorest", config.WithConfigFile("config.yml"))
//	svc, ok := cfg.Service("billing")
//
// Environment variables override file values. They use the GOREST_ prefix
// and a double underscore between nesting levels:
//
//	GOREST_APP__REST__BILLING__URL=https://billing.internal
//	GOREST_REST__TIMEOUT__DEFAULT=3
//
// Map keys are lower-cased by viper. Service lookups fall back to the
// lower-cased name. Timeout paths keep the case written in a YAML or JSON
// config file; paths set only through the environment are lower-case.
package config
