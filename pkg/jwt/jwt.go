// Package jwt firma y verifica los tokens de acceso de la API (HS256).
// El usuario viaja en sub y el rol de operación en role; no hay multi-empresa.
package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken firma, emisor, vencimiento o formato incorrectos.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims claims registrados más el rol de operación (ADMIN, SUPERVISOR o EMPLOYEE).
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Identity lo que la API necesita del token ya verificado.
type Identity struct {
	UserID string
	Role   string // en mayúsculas; vacío si el token no lo trae
}

// Generate firma un token para userID con el rol dado y vigencia ttl.
func Generate(secret, issuer, userID, role string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt: secret vacío")
	}
	if userID == "" {
		return "", errors.New("jwt: sub vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse verifica firma HS256, vencimiento (obligatorio) y, si issuer no es vacío, el emisor.
func Parse(secret, issuer, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, errors.New("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: sin sub", ErrInvalidToken)
	}
	return Identity{
		UserID: claims.Subject,
		Role:   strings.ToUpper(strings.TrimSpace(claims.Role)),
	}, nil
}
