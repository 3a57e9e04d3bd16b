package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/pkg/jwt"
)

var (
	_ ports.PasswordHasher = BcryptHasher{}
	_ ports.TokenIssuer    = JWTIssuer{}
)

// BcryptHasher adaptador de PasswordHasher con bcrypt. Cost 0 = bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// JWTIssuer emite tokens HS256 para el actor.
type JWTIssuer struct {
	Config JWTConfig
}

func (j JWTIssuer) Issue(actor *entity.Actor) (string, time.Time, error) {
	return jwt.Generate(j.Config.Secret, actor.ID, actor.Username, string(actor.Role), j.Config.Issuer, j.Config.ExpMinutes)
}
