package walletauthgw

const TokenCookieName = "walletgw-token"

const RouterNonce = "/walletgw/nonce"
const RouterVerify = "/walletgw/verify"

// Headers injected on proxied requests once the session cookie checks out.
const HeaderUserAddress = "Wallet-User-Address"
const HeaderUserType = "Wallet-User-Type"
