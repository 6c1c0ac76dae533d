package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Cookies issues and parses the split auth cookie pair: "auth" carries the
// JWT header+payload (readable by the frontend), "sign" the signature
// (HttpOnly).
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

type AccountClaims struct {
	AccountId int64  `json:"account_id"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

func NewAccountClaims(accountId int64, username string) *AccountClaims {
	return &AccountClaims{AccountId: accountId, Username: username}
}

func NewCookies(j *JWT) (*Cookies, error) {
	domain, err := requireEnv("COOKIES_DOMAIN")
	if err != nil {
		return nil, err
	}
	secure, ok := os.LookupEnv("COOKIES_SECURE")
	if !ok {
		return nil, fmt.Errorf("no COOKIES_SECURE env variable set")
	}

	sameSite := http.SameSiteStrictMode
	switch strings.ToUpper(os.Getenv("COOKIES_SAMESITE")) {
	case "DEFAULT":
		sameSite = http.SameSiteDefaultMode
	case "LAX":
		sameSite = http.SameSiteLaxMode
	case "NONE":
		sameSite = http.SameSiteNoneMode
	}

	return &Cookies{
		Domain:   domain,
		Secure:   secure != "0",
		SameSite: sameSite,
		jwt:      j,
	}, nil
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{"auth", "sign"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Path:     "/",
			Value:    "delete",
			MaxAge:   -1,
			HttpOnly: name == "sign",
			Domain:   c.Domain,
			Secure:   c.Secure,
			SameSite: c.SameSite,
		})
	}
}

func (c *Cookies) Refresh(w http.ResponseWriter, token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed JWT token generated")
	}
	expires := time.Now().Add(c.jwt.tokenLifetime)
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    parts[0] + "." + parts[1],
		Expires:  expires,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		Value:    parts[2],
		Expires:  expires,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	return nil
}

func (c *Cookies) ParseAccountClaims(r *http.Request) (*AccountClaims, error) {
	authCookie, err := r.Cookie("auth")
	if err != nil {
		return nil, err
	}
	signCookie, err := r.Cookie("sign")
	if err != nil {
		return nil, err
	}
	token, err := c.jwt.ParseWithClaims(
		authCookie.Value+"."+signCookie.Value, &AccountClaims{},
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AccountClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
