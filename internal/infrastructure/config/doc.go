// Package config loads and validates the Govee watcher configuration.
//
// Configuration is read from a YAML file, merged over hardcoded defaults,
// and finally overridden by GOVEEWATCH_* environment variables. The loaded
// Config is validated before use; the process refuses to start on an
// invalid configuration.
//
// # Example
//
//	devices:
//	  - address: "E0:13:D5:71:D0:66"
//	    model: "H5179"
//	  - address: "A4:C1:38:82:A2:88"
//	    model: "H5072"
//
//	status:
//	  host: "127.0.0.1"
//	  port: 1111
//
//	source:
//	  backend: "mqtt"
//	  mqtt:
//	    broker:
//	      host: "localhost"
//	      port: 1883
//	    topic: "goveewatch/adv/#"
//
// # Environment Overrides
//
// Secrets should come from the environment, not the file:
//
//	GOVEEWATCH_MQTT_USERNAME, GOVEEWATCH_MQTT_PASSWORD
//
// Other useful overrides: GOVEEWATCH_STATUS_PORT, GOVEEWATCH_SOURCE_BACKEND,
// GOVEEWATCH_NATS_URL, GOVEEWATCH_ZMQ_ENDPOINT, GOVEEWATCH_LOG_LEVEL.
package config
