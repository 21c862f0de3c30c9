// Package statusd implements the line-oriented TCP status protocol.
//
// Clients connect, send one command per line, and read newline-terminated
// responses. The connection stays open across commands until the client
// closes its side.
//
// # Commands
//
// Commands are case-insensitive:
//
//	status             one response line per known device
//	status <address>   one response line for that device, or "?" if it has
//	                   never been observed; the address may be colon-hex or
//	                   bare-hex
//
// Anything else is ignored: no response is written and the connection stays
// usable. This leniency is deliberate; status ports get probed by monitoring
// systems and port scanners, and answering garbage with errors helps nobody.
//
// # Response Format
//
// One line per device, space-separated:
//
//	E0:13:D5:71:D0:66 21.34 45.67 88 2026-08-26T12:00:00Z
//
// In single-device mode the address field is omitted. A `status` against an
// empty store writes zero lines.
//
// # Fault Handling
//
// End-of-stream closes the connection cleanly. Any other read or write
// fault closes the connection immediately; a faulted connection is terminal
// for that connection only and is never retried. Connections are handled in
// independent goroutines and cannot block one another or the intake path.
package statusd
