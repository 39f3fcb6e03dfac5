package encryption

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

const (
	// SourceCrypto draws key bytes straight from the operating system CSPRNG.
	SourceCrypto = "crypto"
	// SourceChaCha20 expands a CSPRNG seed with an XChaCha20 keystream.
	SourceChaCha20 = "chacha20"
)

// chachaRekeyLimit keeps a single XChaCha20 instance well below its block counter limit.
const chachaRekeyLimit = 1 << 37

// SourceFunc returns a fresh random byte source for one operation.
type SourceFunc func() (io.Reader, error)

// NewSource returns a new random byte source of the given kind.
// Every call yields an independent instance; no generator state is shared or persisted.
func NewSource(kind string) (io.Reader, error) {
	switch kind {
	case SourceCrypto, "":
		return rand.Reader, nil
	case SourceChaCha20:
		return newChaChaSource(rand.Reader, chachaRekeyLimit)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
	}
}

// chachaSource is an io.Reader over an XChaCha20 keystream that reseeds itself
// from seed every limit bytes.
type chachaSource struct {
	seed      io.Reader
	stream    *chacha20.Cipher
	limit     uint64
	remaining uint64
}

func newChaChaSource(seed io.Reader, limit uint64) (*chachaSource, error) {
	source := &chachaSource{seed: seed, limit: limit}

	if err := source.rekey(); err != nil {
		return nil, err
	}

	return source, nil
}

func (s *chachaSource) rekey() error {
	material := make([]byte, chacha20.KeySize+chacha20.NonceSizeX)
	defer clear(material)

	if _, err := io.ReadFull(s.seed, material); err != nil {
		return fmt.Errorf("seeding chacha20: %w", err)
	}

	stream, err := chacha20.NewUnauthenticatedCipher(material[:chacha20.KeySize], material[chacha20.KeySize:])
	if err != nil {
		return fmt.Errorf("creating chacha20 stream: %w", err)
	}

	s.stream = stream
	s.remaining = s.limit

	return nil
}

// Read fills p with keystream bytes.
func (s *chachaSource) Read(p []byte) (int, error) {
	var n int

	for n < len(p) {
		if s.remaining == 0 {
			if err := s.rekey(); err != nil {
				return n, err
			}
		}

		step := min(uint64(len(p)-n), s.remaining) //nolint:gosec // len is non-negative
		out := p[n : n+int(step)]                   //nolint:gosec // step <= len(p)-n

		clear(out)
		s.stream.XORKeyStream(out, out)

		s.remaining -= step
		n += int(step) //nolint:gosec // step <= len(p)-n
	}

	return n, nil
}
