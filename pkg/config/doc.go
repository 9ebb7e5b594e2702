// Package config loads environment-driven configuration structs using
// caarlos0/env tags, with optional .env file support for development.
//
// Every infrastructure package in this module (pg, redis, mongo, logger)
// exposes a Config struct with `env` tags; compose them into an application
// config and load in one call:
//
//	type AppConfig struct {
//	    PG    pg.Config
//	    Redis redis.Config
//	    Log   logger.Config
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
package config
