package walletauthgw

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lazyfrontier/walletgw/pkgs/misc"
)

var (
	ErrNonceInvalid = errors.New("nonce rejected")
	ErrNonceExpired = errors.New("nonce expired")
)

const noncePrompt = "Sign this message to link your wallet"

// NonceIssuer mints signing challenges without server-side state: the nonce
// payload is a uuid plus issue timestamp sealed with AES-GCM, so any nonce
// that opens cleanly was issued by us and its age can be checked.
type NonceIssuer struct {
	box *misc.SealedBox
	ttl time.Duration
}

func NewNonceIssuer(secret []byte, ttl time.Duration) (*NonceIssuer, error) {
	box, err := misc.NewSealedBox(secret)
	if err != nil {
		return nil, err
	}
	return &NonceIssuer{box: box, ttl: ttl}, nil
}

// Issue returns the base64 challenge message the wallet must sign.
func (n *NonceIssuer) Issue() (string, error) {
	plain := fmt.Sprintf("%s %d", uuid.NewString(), time.Now().Unix())
	sealed, err := n.box.Seal(plain)
	if err != nil {
		return "", err
	}
	msg := fmt.Sprintf("%s\n%s", noncePrompt, sealed)
	return base64.StdEncoding.EncodeToString([]byte(msg)), nil
}

// Check validates a nonce previously produced by Issue: it must open under
// our key, carry a uuid and a timestamp, and still be inside the TTL window.
func (n *NonceIssuer) Check(nonce string) error {
	raw, err := base64.StdEncoding.DecodeString(nonce)
	if err != nil {
		return fmt.Errorf("%w: not base64", ErrNonceInvalid)
	}
	lines := strings.Split(string(raw), "\n")
	if len(lines) < 2 {
		return fmt.Errorf("%w: missing challenge line", ErrNonceInvalid)
	}
	plain, err := n.box.Open(lines[len(lines)-1])
	if err != nil {
		return fmt.Errorf("%w: not issued by this gateway", ErrNonceInvalid)
	}
	elems := strings.Split(plain, " ")
	if len(elems) != 2 {
		return fmt.Errorf("%w: bad payload", ErrNonceInvalid)
	}
	if _, err := uuid.Parse(elems[0]); err != nil {
		return fmt.Errorf("%w: bad id", ErrNonceInvalid)
	}
	ts, err := strconv.ParseInt(elems[1], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp", ErrNonceInvalid)
	}
	if time.Since(time.Unix(ts, 0)) > n.ttl {
		return ErrNonceExpired
	}
	return nil
}
