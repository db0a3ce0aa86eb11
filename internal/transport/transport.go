package transport

import "context"

// BLE GATT identifiers for integrators that bridge a Link onto a
// Bluetooth Low Energy connection: one service exposing a handshake
// characteristic (write + read) and a transfer characteristic
// (write-without-response + notify).
const (
	ServiceUUID       = "8C0D3F1A-6B52-4E0D-9A3B-5F41C2D7E680"
	HandshakeCharUUID = "8C0D3F1A-6B52-4E0D-9A3B-5F41C2D7E681"
	TransferCharUUID  = "8C0D3F1A-6B52-4E0D-9A3B-5F41C2D7E682"
)

// DefaultMaxPayload is the per-write payload budget of a typical BLE
// link after ATT overhead.
const DefaultMaxPayload = 180

// Link is one endpoint of the radio link a session runs over.
//
// WriteHandshake and ReadHandshake form the handshake channel; the
// transport guarantees delivery but not pairing, so a peer's key may
// arrive before or after ours is written. WritePacket is fire-and-forget
// on the transfer channel; inbound transfer payloads surface on
// Packets() in arrival order. Every write is bounded by MaxPayload.
type Link interface {
	WriteHandshake(ctx context.Context, payload []byte) error
	ReadHandshake(ctx context.Context) ([]byte, error)
	WritePacket(payload []byte) error
	Packets() <-chan []byte
	MaxPayload() int
	Close() error
}
