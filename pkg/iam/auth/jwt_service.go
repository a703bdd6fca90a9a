package auth

import (
	"fmt"
	"time"

	"github.com/Abraxas-365/hrms/pkg/config"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// JWTService implementación del TokenService usando JWT
type JWTService struct {
	secretKey      []byte
	accessTokenTTL time.Duration
	issuer         string
	audience       []string
}

// NewJWTServiceFromConfig crea una nueva instancia del servicio JWT
func NewJWTServiceFromConfig(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		secretKey:      []byte(cfg.SecretKey),
		accessTokenTTL: cfg.AccessTokenTTL,
		issuer:         cfg.Issuer,
		audience:       cfg.Audience,
	}
}

// JWTClaims son los claims personalizados del token
type JWTClaims struct {
	UserID kernel.UserID `json:"user_id"`
	Email  string        `json:"email"`
	Name   string        `json:"name"`
	Role   string        `json:"role"`
	Scopes []string      `json:"scopes"`
	jwt.RegisteredClaims
}

// GenerateAccessToken genera un token de acceso JWT
func (j *JWTService) GenerateAccessToken(c TokenClaims) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.accessTokenTTL)

	scopes := c.Scopes
	if scopes == nil {
		scopes = []string{}
	}

	jwtClaims := JWTClaims{
		UserID: c.UserID,
		Email:  c.Email,
		Name:   c.Name,
		Role:   c.Role,
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   c.UserID.String(),
			Audience:  j.audience,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", time.Time{}, ErrTokenGenerationFailed().WithDetail("error", err.Error())
	}
	return tokenString, expiresAt, nil
}

// ValidateAccessToken valida y decodifica un token de acceso
func (j *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	opts := []jwt.ParserOption{jwt.WithIssuer(j.issuer)}
	if len(j.audience) > 0 {
		opts = append(opts, jwt.WithAudience(j.audience[0]))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (any, error) {
		// Verificar el método de firma
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	}, opts...)
	if err != nil {
		return nil, ErrTokenValidationFailed().WithDetail("error", err.Error())
	}

	jwtClaims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenValidationFailed().WithDetail("error", "invalid claims")
	}

	return &TokenClaims{
		UserID:    jwtClaims.UserID,
		Email:     jwtClaims.Email,
		Name:      jwtClaims.Name,
		Role:      jwtClaims.Role,
		Scopes:    jwtClaims.Scopes,
		IssuedAt:  jwtClaims.IssuedAt.Time,
		ExpiresAt: jwtClaims.ExpiresAt.Time,
	}, nil
}
