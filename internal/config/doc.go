// Package config loads apodview's start-up configuration.
//
// Values come from three layers, later ones winning:
//
//  1. Built-in defaults (public APOD endpoint, 15s timeout, text logs under
//     ~/.local/state/apodview).
//  2. ~/.config/apodview/config.toml, or the file passed with -config.
//  3. Environment variables APOD_API_KEY, APOD_API_URL, APOD_METRICS_ADDR and
//     APOD_LOG_LEVEL. LoadDotEnv can populate them from a .env file first.
//
// Example config.toml:
//
//	api_key = "..."
//	timeout_seconds = 20
//	log_level = "debug"
//	metrics_addr = "127.0.0.1:9310"
//
// The API key is a secret. Keep it in the environment or a .env file rather
// than in shared config. When no key is configured the client falls back to
// NASA's rate-limited DEMO_KEY.
package config
