// Package session implements the transfer state machine shared by both
// peers. Sender and receiver are mirror images of one machine:
//
//	Idle -> ExchangingKeys -> Ready -> Sending|Receiving -> Complete
//	                 \______________________|______________-> Failed
//
// Flow control is stop-and-wait: exactly one frame is outstanding, the
// next is never sent before the current one is acknowledged, and a lost
// acknowledgment is recovered by retransmitting the identical frame and
// re-acknowledging on the receiving side. Complete and Failed are
// terminal; a failed session is discarded and a new handshake performed
// to retry. All key material is wiped when a terminal state is reached.
package session
