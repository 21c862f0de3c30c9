// Package mqtt provides the MQTT client used to receive BLE advertisement
// frames from gateway devices.
//
// The watcher does not scan for advertisements itself; one or more BLE
// gateways (ESP32 bridges, scanning daemons) publish every observed frame to
// the broker, and this client subscribes to the advertisement topics.
//
// # Topics
//
// Gateways publish one message per advertisement frame:
//
//	goveewatch/adv/<address>    e.g. goveewatch/adv/E0:13:D5:71:D0:66
//
// The watcher subscribes with the wildcard goveewatch/adv/#.
//
// # Reliability
//
// The client auto-reconnects with exponential backoff and restores its
// subscriptions after reconnection. Losing advertisement frames during an
// outage is acceptable: sensors rebroadcast every few seconds and only the
// latest reading is kept.
//
// # Thread Safety
//
// All exported methods are safe for concurrent use from multiple goroutines.
package mqtt
