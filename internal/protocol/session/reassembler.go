package session

import "beamlink/internal/domain"

// Reassembler accumulates decrypted chunks in sequence order and
// reconstructs the original byte stream. The session enforces strict
// sequence ordering before appending; the reassembler does not
// re-validate it.
type Reassembler struct {
	chunks   [][]byte
	size     int
	complete bool
}

// NewReassembler returns an empty reassembly buffer.
func NewReassembler() *Reassembler {
	return &Reassembler{}
}

// Append stores the plaintext of frame seq. last marks the final chunk
// of the stream.
func (r *Reassembler) Append(seq uint32, plaintext []byte, last bool) {
	_ = seq // informational; ordering is the session's responsibility
	r.chunks = append(r.chunks, append([]byte(nil), plaintext...))
	r.size += len(plaintext)
	if last {
		r.complete = true
	}
}

// Finalize concatenates all appended chunks in order. It fails with
// domain.ErrIncompleteTransfer if the final chunk has not been appended.
func (r *Reassembler) Finalize() ([]byte, error) {
	if !r.complete {
		return nil, domain.ErrIncompleteTransfer
	}
	out := make([]byte, 0, r.size)
	for _, c := range r.chunks {
		out = append(out, c...)
	}
	return out, nil
}

// Reset drops the buffered chunks.
func (r *Reassembler) Reset() {
	r.chunks = nil
	r.size = 0
	r.complete = false
}
