package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService emite y valida tokens de servicio para los endpoints de
// escritura. Los tokens los acuña la operacion fuera de banda; el servicio
// solo comparte el secreto HS256.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// ServiceClaims identifica al caller autorizado a publicar scores.
type ServiceClaims struct {
	Caller string `json:"caller,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "decentratrust",
	}
}

// Issue firma un token para el caller indicado.
func (s *TokenService) Issue(caller string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := ServiceClaims{
		Caller: caller,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   caller,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse valida firma, emisor y expiracion.
func (s *TokenService) Parse(tokenString string) (ServiceClaims, error) {
	if len(s.secret) == 0 {
		return ServiceClaims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return ServiceClaims{}, ErrTokenInvalid
	}

	var claims ServiceClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ServiceClaims{}, ErrTokenExpired
		}
		return ServiceClaims{}, ErrTokenInvalid
	}
	if !token.Valid || claims.Issuer != s.issuer {
		return ServiceClaims{}, ErrTokenInvalid
	}
	return claims, nil
}
