package walletauthgw

import (
	"net/http"
	"net/http/httputil"
	"net/url"
)

// ProxyHandler forwards requests to the upstream mapped for the request
// host, but only for callers holding a valid session cookie. The linked
// wallet identity is passed upstream in headers.
type ProxyHandler struct {
	rt    *Runtime
	proxy map[string]*httputil.ReverseProxy
}

func NewProxyHandler(rt *Runtime) *ProxyHandler {
	hostProxy := map[string]*httputil.ReverseProxy{}
	for host, target := range rt.cfg.HostMapping {
		u, err := url.Parse(target)
		if err != nil {
			rt.log.Error("bad host mapping", "host", host, "target", target, "error", err)
			continue
		}
		hostProxy[host] = httputil.NewSingleHostReverseProxy(u)
	}
	return &ProxyHandler{rt: rt, proxy: hostProxy}
}

func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fn, ok := h.proxy[r.Host]
	if !ok {
		respondError(w, http.StatusForbidden, r.Host+" not a valid host")
		return
	}

	tokenCookie, err := r.Cookie(TokenCookieName)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	claims, err := h.rt.parseToken(tokenCookie.Value)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	r.Header.Set(HeaderUserAddress, claims.Address)
	r.Header.Set(HeaderUserType, claims.WalletType)
	fn.ServeHTTP(w, r)
}
