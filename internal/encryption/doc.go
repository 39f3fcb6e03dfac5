// Package encryption implements one-time pad (Vernam) file encryption.
// Encryption XORs the plaintext with a fresh random key stream of equal length and
// writes the ciphertext and the key as two raw artifacts. Decryption XORs a
// ciphertext with its key in lockstep.
package encryption
