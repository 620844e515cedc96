// Package config loads and validates the runtime configuration of a depin
// host.
//
// Configuration is read with Viper from a config.yml, an optional .env file
// (godotenv) and environment variables, in increasing order of precedence.
// Environment variables use the DEPIN_ prefix with underscore-separated
// paths, e.g. DEPIN_REGISTRY_DEFAULT_SCOPE=transient.
//
// # Usage
//
//	cfg, err := config.Load("orders")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
