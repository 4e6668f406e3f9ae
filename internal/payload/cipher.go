package payload

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// Ciphertext layout:
//
//	IV (16 bytes) || AES-256-CBC(PKCS#7-padded plaintext)
//
// There is no length field and no tag. Decrypt finds the end of the
// ciphertext by stopping at the first all-zero block: the LSB plane
// after the payload is zero once the image has been normalized, and a
// genuine ciphertext block is all zero with probability 2^-128.

// Encrypt encrypts plaintext under key with a fresh random IV.
func Encrypt(plaintext []byte, key [KeySize]byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("aes: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(padded))
	iv := out[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("generating IV: %w", err)
	}
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)
	return out, nil
}

// Decrypt reverses Encrypt. Bytes after the ciphertext (a zero block, a
// trailing partial block) are ignored. A wrong key is not detected: if
// the padding does not check out, the raw decrypted blocks are returned.
func Decrypt(data []byte, key [KeySize]byte) ([]byte, error) {
	if len(data) < aes.BlockSize {
		return nil, fmt.Errorf("ciphertext too short: %d bytes", len(data))
	}
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("aes: %w", err)
	}

	iv, body := data[:aes.BlockSize], data[aes.BlockSize:]
	n := 0
	for n+aes.BlockSize <= len(body) && !allZero(body[n:n+aes.BlockSize]) {
		n += aes.BlockSize
	}
	if n == 0 {
		return []byte{}, nil
	}

	plain := make([]byte, n)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body[:n])
	if unpadded, ok := pkcs7Unpad(plain, aes.BlockSize); ok {
		return unpadded, nil
	}
	return plain, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	pad := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+pad)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > blockSize {
		return nil, false
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, false
		}
	}
	return data[:len(data)-pad], true
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
