// Package transport defines the half-duplex, MTU-limited byte pipe the
// session protocol runs over, and two concrete links: an in-memory pipe
// for tests and a TCP link for the CLI. The protocol itself never
// assumes more than the Link contract: a handshake channel with
// write+read, a fire-and-forget transfer channel with an inbound
// notification stream, and a bounded payload size per write.
package transport
