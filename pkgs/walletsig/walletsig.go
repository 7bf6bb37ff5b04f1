// Package walletsig verifies wallet-produced signatures over a challenge
// nonce. Each supported wallet type maps to one verification scheme; the
// check is a pure function of the request and never touches the network.
package walletsig

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// WalletType tags the signature scheme a request must be checked with.
type WalletType string

const (
	WalletTypeEVM    WalletType = "EVM"
	WalletTypeKlaytn WalletType = "KLAYTN"
	WalletTypeSolana WalletType = "SOLANA"
	WalletTypeCosmos WalletType = "COSMOS"
)

var (
	// ErrUnsupportedWalletType reports a wallet type outside the known set.
	ErrUnsupportedWalletType = errors.New("unsupported wallet type")
	// ErrMalformedSignature reports a signature that cannot be decoded into
	// the byte layout its scheme expects.
	ErrMalformedSignature = errors.New("malformed signature")
	// ErrMalformedRequest reports a nonce, address or public key that cannot
	// be decoded. Distinct from a well-formed signature that fails the
	// cryptographic check, which is reported as isValid=false with no error.
	ErrMalformedRequest = errors.New("malformed request")
)

// ParseWalletType validates a wallet-type tag coming off the wire.
func ParseWalletType(s string) (WalletType, error) {
	wt := WalletType(s)
	if _, ok := verifiers[wt]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedWalletType, s)
	}
	return wt, nil
}

// Request carries everything needed to check one wallet signature.
type Request struct {
	WalletType WalletType
	// Address is the claimed wallet address: 0x-hex for EVM and Klaytn,
	// base58 for Solana, bech32 for Cosmos.
	Address string
	// Nonce is the base64-encoded challenge message that was signed.
	Nonce string
	// Signature encoding varies by scheme: hex for EVM, Klaytn and Solana,
	// base64 for Cosmos.
	Signature string
	// PubKey is the base64 compressed secp256k1 public key. Cosmos only;
	// ignored by the other schemes.
	PubKey string
}

type verifyFunc func(req Request, msg []byte) (bool, error)

var verifiers = map[WalletType]verifyFunc{
	WalletTypeEVM:    verifyEVM,
	WalletTypeKlaytn: verifyKlaytn,
	WalletTypeSolana: verifySolana,
	WalletTypeCosmos: verifyCosmos,
}

// Verify reports whether req.Signature was produced over the decoded nonce
// by the key controlling req.Address. A false result with a nil error means
// the signature was well formed but cryptographically rejected.
func Verify(req Request) (bool, error) {
	fn, ok := verifiers[req.WalletType]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedWalletType, req.WalletType)
	}
	msg, err := base64.StdEncoding.DecodeString(req.Nonce)
	if err != nil {
		return false, fmt.Errorf("%w: nonce is not base64: %v", ErrMalformedRequest, err)
	}
	return fn(req, msg)
}
