package config

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	publicKey     *rsa.PublicKey
	privateKey    *rsa.PrivateKey
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

func loadPEM(envKey, fileKey string) ([]byte, error) {
	if pem, ok := os.LookupEnv(envKey); ok {
		return []byte(pem), nil
	}
	path, ok := os.LookupEnv(fileKey)
	if !ok {
		return nil, fmt.Errorf("no %s or %s env variable set", envKey, fileKey)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", fileKey, err)
	}
	return data, nil
}

func NewJWT() (*JWT, error) {
	privatePEM, err := loadPEM("JWT_PRIVATE_KEY", "JWT_PRIVATE_KEY_FILE")
	if err != nil {
		return nil, err
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT private key: %w", err)
	}

	publicPEM, err := loadPEM("JWT_PUBLIC_KEY", "JWT_PUBLIC_KEY_FILE")
	if err != nil {
		return nil, err
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT public key: %w", err)
	}

	return &JWT{
		privateKey:    privateKey,
		publicKey:     publicKey,
		signingMethod: jwt.GetSigningMethod("RS256"),
		tokenLifetime: time.Hour * 24 * 30,
	}, nil
}

func (j *JWT) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.privateKey)
}

func (j *JWT) ParseWithClaims(tokenString string, claims jwt.Claims) (*jwt.Token, error) {
	return jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.publicKey, nil
		},
	)
}
