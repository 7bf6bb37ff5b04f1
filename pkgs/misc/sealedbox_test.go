package misc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealedBoxRoundTrip(t *testing.T) {
	box, err := NewSealedBox([]byte("test-secret"))
	require.NoError(t, err)

	token, err := box.Seal("hello world")
	require.NoError(t, err)

	plain, err := box.Open(token)
	require.NoError(t, err)
	require.Equal(t, "hello world", plain)
}

func TestSealedBoxTamperDetection(t *testing.T) {
	box, err := NewSealedBox([]byte("test-secret"))
	require.NoError(t, err)

	token, err := box.Seal("hello world")
	require.NoError(t, err)

	tampered := []byte(token)
	tampered[len(tampered)-1] ^= 0x01
	_, err = box.Open(string(tampered))
	require.Error(t, err)
}

func TestSealedBoxWrongKey(t *testing.T) {
	box1, err := NewSealedBox([]byte("secret-one"))
	require.NoError(t, err)
	box2, err := NewSealedBox([]byte("secret-two"))
	require.NoError(t, err)

	token, err := box1.Seal("hello")
	require.NoError(t, err)
	_, err = box2.Open(token)
	require.Error(t, err)
}

func TestSealedBoxEmptySecret(t *testing.T) {
	_, err := NewSealedBox(nil)
	require.Error(t, err)
}

func TestSealedBoxGarbageToken(t *testing.T) {
	box, err := NewSealedBox([]byte("test-secret"))
	require.NoError(t, err)

	_, err = box.Open("@@@not base64@@@")
	require.Error(t, err)
	_, err = box.Open("AAAA")
	require.Error(t, err)
}
