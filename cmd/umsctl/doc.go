// Command umsctl runs and administers the user management service.
//
// The service keeps two collections, users and groups, in an embedded
// SQLite file or a PostgreSQL database. Group membership is derived from
// the group ids listed on each user.
//
// # Quick Start
//
//	# Create the schema and load the bundled seed
//	umsctl db init --seed data/seed.json
//
//	# Start the server
//	umsctl server
//
//	# Inspect the store from the command line
//	umsctl user list
//	umsctl group show 2 --output json
//
// # Environment Variables
//
//   - UMS_CONFIG_PATH: directory holding ums.yml (default /etc/ums/config)
//   - UMS_DATABASE_DRIVER: sqlite or postgres
//   - UMS_DATABASE_URL: sqlite file path or postgres connection URL
//   - UMS_SEED_LOCATION: seed file path or http(s) URL
//   - UMS_BIND_ADDRESS, UMS_PORT: server listen address
//   - UMS_LOG_LEVEL: log level (debug, info, warn, error)
package main
