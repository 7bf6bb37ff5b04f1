package walletsig

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/ripemd160"
)

// ADR-36 off-chain sign doc. Fields are declared in the amino canonical
// order (sorted JSON keys) so a plain json.Marshal yields the same bytes
// the wallet signed. Go's default HTML escaping of & < > matches the amino
// JSON escaping rules.
type adr36SignDoc struct {
	AccountNumber string     `json:"account_number"`
	ChainID       string     `json:"chain_id"`
	Fee           adr36Fee   `json:"fee"`
	Memo          string     `json:"memo"`
	Msgs          []adr36Msg `json:"msgs"`
	Sequence      string     `json:"sequence"`
}

type adr36Fee struct {
	Amount []json.RawMessage `json:"amount"`
	Gas    string            `json:"gas"`
}

type adr36Msg struct {
	Type  string       `json:"type"`
	Value adr36MsgData `json:"value"`
}

type adr36MsgData struct {
	Data   string `json:"data"`
	Signer string `json:"signer"`
}

const adr36MsgType = "sign/MsgSignData"

func adr36Digest(signer string, data []byte) ([]byte, error) {
	doc := adr36SignDoc{
		AccountNumber: "0",
		ChainID:       "",
		Fee:           adr36Fee{Amount: []json.RawMessage{}, Gas: "0"},
		Memo:          "",
		Msgs: []adr36Msg{{
			Type: adr36MsgType,
			Value: adr36MsgData{
				Data:   base64.StdEncoding.EncodeToString(data),
				Signer: signer,
			},
		}},
		Sequence: "0",
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(raw)
	return digest[:], nil
}

// verifyCosmos checks a 64-byte r||s secp256k1 signature over the SHA-256
// of the canonical ADR-36 sign doc wrapping the decoded nonce. The supplied
// public key must itself derive the claimed bech32 address; a key that
// verifies the signature but belongs to a different account is rejected.
func verifyCosmos(req Request, msg []byte) (bool, error) {
	pubRaw, err := base64.StdEncoding.DecodeString(req.PubKey)
	if err != nil {
		return false, fmt.Errorf("%w: public key is not base64: %v", ErrMalformedRequest, err)
	}
	pub, err := btcec.ParsePubKey(pubRaw)
	if err != nil {
		return false, fmt.Errorf("%w: invalid secp256k1 public key: %v", ErrMalformedRequest, err)
	}
	sigRaw, err := base64.StdEncoding.DecodeString(req.Signature)
	if err != nil {
		return false, fmt.Errorf("%w: signature is not base64: %v", ErrMalformedSignature, err)
	}
	sig, err := parseCompactSig(sigRaw)
	if err != nil {
		return false, err
	}

	ok, err := addressMatchesPubKey(req.Address, pub)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	digest, err := adr36Digest(req.Address, msg)
	if err != nil {
		return false, err
	}
	return sig.Verify(digest, pub), nil
}

func parseCompactSig(raw []byte) (*ecdsa.Signature, error) {
	if len(raw) != 64 {
		return nil, fmt.Errorf("%w: want 64 bytes r||s, got %d", ErrMalformedSignature, len(raw))
	}
	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(raw[:32]); overflow || r.IsZero() {
		return nil, fmt.Errorf("%w: invalid r", ErrMalformedSignature)
	}
	if overflow := s.SetByteSlice(raw[32:]); overflow || s.IsZero() {
		return nil, fmt.Errorf("%w: invalid s", ErrMalformedSignature)
	}
	return ecdsa.NewSignature(&r, &s), nil
}

// addressMatchesPubKey compares the bech32 payload of the claimed address
// against ripemd160(sha256(compressed pubkey)). The human-readable prefix is
// not pinned, so any Cosmos-family bech32 address works.
func addressMatchesPubKey(address string, pub *btcec.PublicKey) (bool, error) {
	_, data, err := bech32.Decode(address)
	if err != nil {
		return false, fmt.Errorf("%w: address is not bech32: %v", ErrMalformedRequest, err)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return false, fmt.Errorf("%w: invalid bech32 payload: %v", ErrMalformedRequest, err)
	}

	sum := sha256.Sum256(pub.SerializeCompressed())
	hasher := ripemd160.New()
	hasher.Write(sum[:])
	return bytes.Equal(payload, hasher.Sum(nil)), nil
}
