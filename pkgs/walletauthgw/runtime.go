package walletauthgw

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lazyfrontier/walletgw/pkgs/walletsig"
)

// Runtime wires the nonce issuer, the signature verifier and the session
// layer behind one HTTP surface. All of it is stateless per request.
type Runtime struct {
	cfg    *Config
	log    *slog.Logger
	nonces *NonceIssuer
}

func NewRuntime(cfg *Config) (*Runtime, error) {
	nonces, err := NewNonceIssuer([]byte(cfg.NonceSecret), time.Duration(cfg.NonceTTLSeconds)*time.Second)
	if err != nil {
		return nil, err
	}
	return &Runtime{
		cfg:    cfg,
		log:    setupLogger(cfg.LogLevel, cfg.LogFormat),
		nonces: nonces,
	}, nil
}

func (rt *Runtime) ping(w http.ResponseWriter, req *http.Request) {
	w.Write([]byte("pong"))
}

func (rt *Runtime) health(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (rt *Runtime) handleNonce(w http.ResponseWriter, req *http.Request) {
	nonce, err := rt.nonces.Issue()
	if err != nil {
		rt.log.Error("nonce issue failed", "error", err)
		respondError(w, http.StatusInternalServerError, "nonce generation failed")
		return
	}
	respondJSON(w, http.StatusOK, NonceResponse{Nonce: nonce})
}

// handleVerify is the wallet-link endpoint. Malformed input and unknown
// wallet types come back as 400; a well-formed signature that fails the
// cryptographic check, or a stale nonce, comes back as 401 with
// isValid=false.
func (rt *Runtime) handleVerify(w http.ResponseWriter, req *http.Request) {
	var verifyDat VerifyRequest
	if err := json.NewDecoder(req.Body).Decode(&verifyDat); err != nil {
		respondError(w, http.StatusBadRequest, "error decode body")
		return
	}
	defer req.Body.Close()

	wt, err := walletsig.ParseWalletType(verifyDat.WalletType)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := walletsig.Verify(walletsig.Request{
		WalletType: wt,
		Address:    verifyDat.WalletAddress,
		Nonce:      verifyDat.Nonce,
		Signature:  verifyDat.Signature,
		PubKey:     verifyDat.PublicKey,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		respondError(w, http.StatusUnauthorized, "signature verification failed")
		return
	}

	if err := rt.nonces.Check(verifyDat.Nonce); err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	token, expiresAt, err := rt.issueToken(wt, verifyDat.WalletAddress)
	if err != nil {
		rt.log.Error("token issue failed", "error", err)
		respondError(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Expires:  expiresAt,
		Path:     "/",
		HttpOnly: true,
	})

	rt.log.Info("wallet linked", "wallet_type", wt, "address", verifyDat.WalletAddress)
	respondJSON(w, http.StatusOK, VerifyResponse{IsValid: true, Redirect: verifyDat.Redirect})
}

func (rt *Runtime) router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(rt.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	if rt.cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.cfg.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/ping", rt.ping)
	r.Get("/health", rt.health)
	r.Get(RouterNonce, rt.handleNonce)
	r.Post(RouterVerify, rt.handleVerify)

	// Everything else goes through the authenticated reverse proxy.
	proxy := NewProxyHandler(rt)
	r.NotFound(proxy.ServeHTTP)

	return r
}

// Run starts the gateway and blocks until SIGINT/SIGTERM or a listen error,
// then shuts down gracefully.
func (rt *Runtime) Run() error {
	srv := &http.Server{
		Addr:         rt.cfg.ListenAddr,
		Handler:      rt.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		rt.log.Info("server listening", "addr", rt.cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		rt.log.Info("shutdown signal received")
	case err := <-serverErr:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}
