// Package auth проверяет токены внешнего провайдера аутентификации.
// Провайдер подписывает access token по HS256 общим секретом проекта;
// сервис только проверяет подпись и достает из claims текущего пользователя.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shenikar/mobility_map/internal/models"
)

var ErrInvalidToken = errors.New("auth: invalid token")

// UserMetadata - профиль, который провайдер кладет в токен
type UserMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Claims - полезная нагрузка access token провайдера
type Claims struct {
	jwt.RegisteredClaims
	Email        string       `json:"email,omitempty"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Verify проверяет подпись и срок действия и возвращает пользователя
func (v *Verifier) Verify(tokenString string) (*models.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	name := claims.UserMetadata.FullName
	if name == "" {
		name = claims.Email
	}
	return &models.Identity{
		ID:        claims.Subject,
		Email:     claims.Email,
		Name:      name,
		AvatarURL: claims.UserMetadata.AvatarURL,
	}, nil
}

// Sign выпускает токен в формате провайдера. Нужен для тестов и локальной разработки.
func (v *Verifier) Sign(identity models.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: identity.Email,
		UserMetadata: UserMetadata{
			FullName:  identity.Name,
			AvatarURL: identity.AvatarURL,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}
	return signed, nil
}
