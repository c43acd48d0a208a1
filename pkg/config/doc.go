// Package config provides configuration management for the user
// management service.
//
// Values are resolved in three layers, each overriding the previous one:
//
//   - Built-in defaults
//   - The YAML file $UMS_CONFIG_PATH/ums.yml (default /etc/ums/config/ums.yml)
//   - UMS_* environment variables
//
// The source of every attribute is tracked so `umsctl configuration show`
// can report where a value came from.
//
// # Key Configuration Options
//
//   - UMS_DATABASE_DRIVER: sqlite (default) or postgres
//   - UMS_DATABASE_URL: sqlite file path or postgres connection URL
//   - UMS_SEED_LOCATION: seed file path or http(s) URL
//   - UMS_BIND_ADDRESS, UMS_PORT: server listen address
//   - UMS_LOG_LEVEL: logging verbosity
package config
