package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken token mal formado, expirado o con firma incorrecta.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims incluye los claims estándar JWT más el actor y su rol.
// El rol viaja en el token solo como pista: el middleware vuelve a cargar
// el actor para rechazar cuentas desactivadas.
type Claims struct {
	jwt.RegisteredClaims
	ActorID  string `json:"actor_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // "owner" | "manager" | "staff"
}

// Generate firma un token HS256 para el actor. Devuelve también la expiración.
func Generate(secret, actorID, username, role, issuer string, expMinutes int) (string, time.Time, error) {
	return GenerateAt(time.Now(), secret, actorID, username, role, issuer, expMinutes)
}

// GenerateAt igual que Generate pero con la hora de emisión explícita.
func GenerateAt(now time.Time, secret, actorID, username, role, issuer string, expMinutes int) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("jwt: secret vacío")
	}
	if expMinutes <= 0 {
		return "", time.Time{}, fmt.Errorf("jwt: expiración debe ser positiva")
	}
	exp := now.Add(time.Duration(expMinutes) * time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   actorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		ActorID:  actorID,
		Username: username,
		Role:     role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse valida el token y devuelve sus claims.
// Retorna ErrInvalidToken (envuelto) si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ActorID == "" {
		return nil, fmt.Errorf("%w: claims inválidos", ErrInvalidToken)
	}
	return claims, nil
}
