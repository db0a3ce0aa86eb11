// Package app wires a transport link and a transfer session together
// from runtime configuration. The CLI is its only consumer; the protocol
// packages never depend on it.
package app
