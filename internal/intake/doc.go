// Package intake moves advertisement frames from a gateway transport into
// the device state store.
//
// The BLE scanning itself happens outside this process: gateway devices
// publish every frame they observe to a message broker. A Source wraps one
// transport (MQTT, NATS or ZeroMQ) and exposes the frames as a channel of
// Advertisement events. The Intake consumes that channel in a single
// goroutine, making it the store's only writer:
//
//	gateway → Source → events channel → Intake → govee.Decode → device.Store
//
// # Drop Policy
//
// Broadcast traffic is noisy and unauthenticated, so the intake drops
// silently rather than failing:
//
//   - frames whose address is not in the registry (irrelevant traffic)
//   - frames that fail to decode (foreign or malformed payloads)
//   - frames arriving while the event channel is full (sensors rebroadcast
//     within seconds, and only the latest reading is kept)
//
// Every drop is counted in metrics and visible at debug log level.
package intake
