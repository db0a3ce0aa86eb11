// Package frame implements the authenticated encryption and wire codec
// for transfer frames and acknowledgments.
//
// Wire layout of a frame:
//
//	[sequence: 4 bytes BE][flags: 1 byte, bit0=last][nonce: 12][ciphertext][tag: 16]
//
// The nonce is derived deterministically from the sequence number, so it
// is unique per (session key, frame) pair for the life of a session
// regardless of RNG quality. The header (sequence + flags) is bound into
// the AEAD as associated data: a frame whose header was altered in
// flight fails authentication rather than being misfiled.
//
// An acknowledgment is the bare acknowledged sequence number, 4 bytes BE,
// carried on the same transfer channel in the opposite direction.
package frame
