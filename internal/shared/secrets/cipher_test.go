package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testKey(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	assert.NoError(t, err)
	return base64.StdEncoding.EncodeToString(key)
}

func TestCipherRoundTrip(t *testing.T) {
	c, err := NewCipher(testKey(t))
	assert.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		encrypted, err := c.Encrypt("s3cr3t-p@ss")
		assert.NoError(t, err)
		assert.NotEqual(t, "s3cr3t-p@ss", encrypted)

		decrypted, err := c.Decrypt(encrypted)
		assert.NoError(t, err)
		assert.Equal(t, "s3cr3t-p@ss", decrypted)
	})

	t.Run("empty plaintext stays empty", func(t *testing.T) {
		encrypted, err := c.Encrypt("")
		assert.NoError(t, err)
		assert.Equal(t, "", encrypted)

		decrypted, err := c.Decrypt("")
		assert.NoError(t, err)
		assert.Equal(t, "", decrypted)
	})

	t.Run("same plaintext encrypts differently", func(t *testing.T) {
		a, err := c.Encrypt("hello")
		assert.NoError(t, err)
		b, err := c.Encrypt("hello")
		assert.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("negative tampered ciphertext", func(t *testing.T) {
		encrypted, err := c.Encrypt("hello")
		assert.NoError(t, err)

		raw, _ := base64.StdEncoding.DecodeString(encrypted)
		raw[len(raw)-1] ^= 0xff
		tampered := base64.StdEncoding.EncodeToString(raw)

		_, err = c.Decrypt(tampered)
		assert.Error(t, err)
	})

	t.Run("negative wrong key", func(t *testing.T) {
		encrypted, err := c.Encrypt("hello")
		assert.NoError(t, err)

		other, err := NewCipher(testKey(t))
		assert.NoError(t, err)

		_, err = other.Decrypt(encrypted)
		assert.Error(t, err)
	})
}

func TestNewCipher(t *testing.T) {
	t.Run("negative empty key", func(t *testing.T) {
		_, err := NewCipher("")
		assert.Error(t, err)
	})

	t.Run("negative not base64", func(t *testing.T) {
		_, err := NewCipher("not-base64!!!")
		assert.Error(t, err)
	})

	t.Run("negative wrong length", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString([]byte("too-short"))
		_, err := NewCipher(short)
		assert.Error(t, err)
	})
}
