package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/studyhub-dev/studyhub/shared/domain"
	internal_errors "github.com/studyhub-dev/studyhub/shared/errors"
	"github.com/studyhub-dev/studyhub/shared/logger"
)

var ErrInvalidToken = internal_errors.Unauthenticated("Token is not valid")

type JwtService interface {
	NewToken(identity domain.Identity) (string, error)
	DecodeToken(jwtStr string) (*domain.Identity, error)
}

// Claims is the token payload: {"user": {"id", "name"}} plus registered claims.
type Claims struct {
	User domain.Identity `json:"user"`
	jwt.RegisteredClaims
}

type Jwt struct {
	secretKey []byte
	ttl       time.Duration // 0 issues tokens without exp
	now       func() time.Time
	parser    *jwt.Parser
}

func New(secretKey string, ttl time.Duration) (*Jwt, error) {
	if secretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("negative jwt ttl %s", ttl)
	}
	return &Jwt{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithStrictDecoding(),
			jwt.WithIssuedAt(),
		),
	}, nil
}

func (j *Jwt) NewToken(identity domain.Identity) (string, error) {
	now := j.now()
	claims := Claims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if j.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.ttl))
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("can't sign token: %w", err)
	}
	return tokenString, nil
}

// DecodeToken checks the signature and expiry only. It never consults the user store.
func (j *Jwt) DecodeToken(jwtStr string) (*domain.Identity, error) {
	var claims Claims
	token, err := j.parser.ParseWithClaims(jwtStr, &claims, func(*jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	})
	if err != nil {
		logger.Log.Debug("token rejected", "error", err)
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.User.Id == "" {
		return nil, ErrInvalidToken
	}
	return &claims.User, nil
}
