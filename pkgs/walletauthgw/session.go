package walletauthgw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/lazyfrontier/walletgw/pkgs/walletsig"
)

// Claims is the session payload carried by the gateway cookie.
type Claims struct {
	Address    string `json:"address"`
	WalletType string `json:"walletType"`
	jwt.StandardClaims
}

func (rt *Runtime) issueToken(wt walletsig.WalletType, address string) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(rt.cfg.TokenTTLHours) * time.Hour)
	claims := &Claims{
		Address:    address,
		WalletType: string(wt),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(rt.cfg.TokenSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (rt *Runtime) parseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(rt.cfg.TokenSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
