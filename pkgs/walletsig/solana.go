package walletsig

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// verifySolana checks a detached ed25519 signature over the UTF-8 bytes of
// the decoded nonce. The wallet address is the base58 public key itself, so
// there is no recovery step.
func verifySolana(req Request, msg []byte) (bool, error) {
	pub := base58.Decode(req.Address)
	if len(pub) != ed25519.PublicKeySize {
		return false, fmt.Errorf("%w: address is not a base58 ed25519 public key", ErrMalformedRequest)
	}
	sig, err := hex.DecodeString(strings.TrimPrefix(req.Signature, "0x"))
	if err != nil {
		return false, fmt.Errorf("%w: signature is not hex: %v", ErrMalformedSignature, err)
	}
	if len(sig) != ed25519.SignatureSize {
		return false, fmt.Errorf("%w: want %d bytes, got %d", ErrMalformedSignature, ed25519.SignatureSize, len(sig))
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig), nil
}
