package encryption

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
)

// Encrypt XORs plain with a key stream drawn from source. The key stream is written
// to key and the result to cipherText, both in input order. It returns the number of
// plaintext bytes processed; on error, the bytes before the failing chunk remain
// written.
func Encrypt(plain io.Reader, cipherText, key io.Writer, source io.Reader) (int64, error) {
	buf := getChunk()
	defer putChunk(buf)

	var total int64

	for {
		n, readErr := plain.Read(buf.in)
		if n > 0 {
			if _, err := io.ReadFull(source, buf.key[:n]); err != nil {
				return total, fmt.Errorf("%w: %w", ErrShortRandom, err)
			}

			subtle.XORBytes(buf.out[:n], buf.in[:n], buf.key[:n])

			if _, err := key.Write(buf.key[:n]); err != nil {
				return total, fmt.Errorf("writing key stream: %w", err)
			}

			if _, err := cipherText.Write(buf.out[:n]); err != nil {
				return total, fmt.Errorf("writing ciphertext: %w", err)
			}

			total += int64(n)
		}

		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return total, fmt.Errorf("reading plaintext: %w", readErr)
		}
	}

	return total, nil
}
