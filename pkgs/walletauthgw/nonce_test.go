package walletauthgw

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNonceIssueAndCheck(t *testing.T) {
	n, err := NewNonceIssuer([]byte("test-secret"), 3*time.Minute)
	require.NoError(t, err)

	nonce, err := n.Issue()
	require.NoError(t, err)
	require.NoError(t, n.Check(nonce))

	// The challenge is base64 of a human-readable prompt plus sealed payload.
	raw, err := base64.StdEncoding.DecodeString(nonce)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), noncePrompt))
}

func TestNonceExpiry(t *testing.T) {
	n, err := NewNonceIssuer([]byte("test-secret"), -time.Second)
	require.NoError(t, err)

	nonce, err := n.Issue()
	require.NoError(t, err)
	require.ErrorIs(t, n.Check(nonce), ErrNonceExpired)
}

func TestNonceForgeryRejected(t *testing.T) {
	n, err := NewNonceIssuer([]byte("test-secret"), 3*time.Minute)
	require.NoError(t, err)

	// Not base64 at all.
	require.ErrorIs(t, n.Check("***"), ErrNonceInvalid)

	// Valid base64 but never sealed by this gateway.
	forged := base64.StdEncoding.EncodeToString([]byte(noncePrompt + "\nnot-a-sealed-token"))
	require.ErrorIs(t, n.Check(forged), ErrNonceInvalid)

	// Sealed under another key.
	other, err := NewNonceIssuer([]byte("another-secret"), 3*time.Minute)
	require.NoError(t, err)
	nonce, err := other.Issue()
	require.NoError(t, err)
	require.ErrorIs(t, n.Check(nonce), ErrNonceInvalid)
}
