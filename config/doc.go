// Package config loads program configuration from a config.yml file, a .env
// file and the process environment using Viper.
//
// Files are searched in the usual places (./cmd/<service>/, ./config/ and
// the working directory) unless given explicitly. Environment variables
// override file values: ELEVENLABS_API_KEY sets elevenlabs.api_key and
// WEBHOOK_SECRET sets webhook.secret.
//
//	var cfg AppConfig
//	if err := config.Load("transcriber", &cfg); err != nil {
//	    log.Fatal(err)
//	}
package config
