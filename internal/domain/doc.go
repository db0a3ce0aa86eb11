// Package domain defines the core data models shared across the protocol.
// It contains plain types (keys, transfer states) and the error taxonomy only.
package domain
