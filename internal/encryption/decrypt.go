package encryption

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
)

// Decrypt XORs cipherText with key byte by byte and writes the result to plain.
//
// Both streams are consumed in lockstep and decryption stops as soon as either one is
// exhausted, so the output length is the shorter of the two. With strict set, a
// length difference is reported as ErrLengthMismatch once the common prefix has
// been written.
func Decrypt(cipherText, key io.Reader, plain io.Writer, strict bool) (int64, error) {
	buf := getChunk()
	defer putChunk(buf)

	var total int64

	for {
		n, readErr := cipherText.Read(buf.in)
		if n > 0 {
			got, keyErr := io.ReadFull(key, buf.key[:n])
			if got > 0 {
				subtle.XORBytes(buf.out[:got], buf.in[:got], buf.key[:got])

				if _, err := plain.Write(buf.out[:got]); err != nil {
					return total, fmt.Errorf("writing plaintext: %w", err)
				}

				total += int64(got)
			}

			switch {
			case keyErr == nil:
			case errors.Is(keyErr, io.EOF), errors.Is(keyErr, io.ErrUnexpectedEOF):
				if strict {
					return total, fmt.Errorf("%w: key ends after %d bytes", ErrLengthMismatch, total)
				}

				return total, nil
			default:
				return total, fmt.Errorf("reading key: %w", keyErr)
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return total, fmt.Errorf("reading ciphertext: %w", readErr)
		}
	}

	if strict {
		var probe [1]byte

		n, err := io.ReadFull(key, probe[:])
		if n > 0 {
			return total, fmt.Errorf("%w: ciphertext ends after %d bytes", ErrLengthMismatch, total)
		}

		if err != nil && !errors.Is(err, io.EOF) {
			return total, fmt.Errorf("reading key: %w", err)
		}
	}

	return total, nil
}
