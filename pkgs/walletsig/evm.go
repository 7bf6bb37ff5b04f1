package walletsig

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Personal-message prefixes. Both chains hash
// prefix + decimal message length + message with Keccak256.
const (
	ethSignPrefix    = "\x19Ethereum Signed Message:\n"
	klaytnSignPrefix = "\x19Klaytn Signed Message:\n"
)

func verifyEVM(req Request, msg []byte) (bool, error) {
	return verifyPersonalSign(req.Address, req.Signature, ethSignPrefix, msg)
}

func verifyKlaytn(req Request, msg []byte) (bool, error) {
	return verifyPersonalSign(req.Address, req.Signature, klaytnSignPrefix, msg)
}

func personalHash(prefix string, msg []byte) []byte {
	return crypto.Keccak256([]byte(fmt.Sprintf("%s%d", prefix, len(msg))), msg)
}

// verifyPersonalSign recovers the signing address from a 65-byte [R||S||V]
// signature and compares it to the claimed address. The comparison is an
// exact string match: recovered addresses carry EIP-55 checksum casing and
// callers are expected to supply the same.
func verifyPersonalSign(address, signature, prefix string, msg []byte) (bool, error) {
	sig, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil {
		return false, fmt.Errorf("%w: signature is not hex: %v", ErrMalformedSignature, err)
	}
	if len(sig) != crypto.SignatureLength {
		return false, fmt.Errorf("%w: want %d bytes, got %d", ErrMalformedSignature, crypto.SignatureLength, len(sig))
	}
	// Wallets emit V as 27/28, crypto.SigToPub wants 0/1.
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	if sig[64] > 1 {
		return false, fmt.Errorf("%w: invalid recovery id %d", ErrMalformedSignature, sig[64])
	}

	pub, err := crypto.SigToPub(personalHash(prefix, msg), sig)
	if err != nil {
		return false, nil
	}
	return crypto.PubkeyToAddress(*pub).Hex() == address, nil
}
