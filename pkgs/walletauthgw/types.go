package walletauthgw

// VerifyRequest is the wallet-link payload posted to RouterVerify.
type VerifyRequest struct {
	WalletType    string `json:"walletType"`
	WalletAddress string `json:"walletAddress"`
	Signature     string `json:"signature"`
	Nonce         string `json:"nonce"`
	// PublicKey is only required for COSMOS wallets, which verify against an
	// explicit key instead of recovering one.
	PublicKey string `json:"publicKey,omitempty"`
	Redirect  string `json:"redirect,omitempty"`
}

type VerifyResponse struct {
	IsValid  bool   `json:"isValid"`
	Redirect string `json:"redirect,omitempty"`
}

type NonceResponse struct {
	Nonce string `json:"nonce"`
}

type errorResponse struct {
	Error   string `json:"error"`
	IsValid bool   `json:"isValid"`
}
