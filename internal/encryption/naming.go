package encryption

import (
	"os"
	"strings"

	"github.com/idelchi/vernam/internal/config"
)

// Naming derives artifact paths from a source or ciphertext path.
type Naming struct {
	config.Suffixes
}

// CipherPath returns the ciphertext artifact path for source.
func (n Naming) CipherPath(source string) string {
	return source + n.Cipher
}

// KeyPath returns the key artifact path for source.
func (n Naming) KeyPath(source string) string {
	return source + n.Key
}

// PlainPath returns the decryption output path for a ciphertext path.
// The cipher suffix is removed once from the end; other names are returned unchanged.
// A name consisting only of the suffix is kept as is.
func (n Naming) PlainPath(cipherPath string) string {
	plain := strings.TrimSuffix(cipherPath, n.Cipher)
	if plain == "" || os.IsPathSeparator(plain[len(plain)-1]) {
		return cipherPath
	}

	return plain
}
