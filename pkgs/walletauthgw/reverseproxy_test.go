package walletauthgw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lazyfrontier/walletgw/pkgs/walletsig"
)

func TestProxyRequiresSession(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Echo-Address", r.Header.Get(HeaderUserAddress))
		w.Header().Set("Echo-Type", r.Header.Get(HeaderUserType))
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	rt := testRuntime(t)
	rt.cfg.HostMapping = map[string]string{"app.example.com": backend.URL}
	proxy := NewProxyHandler(rt)

	// No cookie.
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://app.example.com/secret", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage cookie.
	req := httptest.NewRequest(http.MethodGet, "http://app.example.com/secret", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "garbage"})
	rec = httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid session: request is forwarded with identity headers set.
	token, _, err := rt.issueToken(walletsig.WalletTypeEVM, "0xDeaDbeef")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "http://app.example.com/secret", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	rec = httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "0xDeaDbeef", rec.Header().Get("Echo-Address"))
	require.Equal(t, "EVM", rec.Header().Get("Echo-Type"))
}

func TestProxyUnknownHost(t *testing.T) {
	rt := testRuntime(t)
	proxy := NewProxyHandler(rt)

	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://nobody.example.com/", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)
}
