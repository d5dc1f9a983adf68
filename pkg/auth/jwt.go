package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"github.com/GlebRadaev/equb/internal/domain"
)

const issuer = "equb"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

type JWTServiceInterface interface {
	GenerateJWT(actor domain.Actor, expirationTime time.Time) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims carry the actor resolved upstream: the subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

func (c *Claims) Actor() (domain.Actor, error) {
	userID, err := uuid.Parse(c.Subject)
	if err != nil || userID == uuid.Nil {
		return domain.Actor{}, ErrInvalidClaims
	}
	role := domain.Role(c.Role)
	if !role.Valid() {
		return domain.Actor{}, ErrInvalidClaims
	}
	return domain.Actor{UserID: userID, Role: role}, nil
}

type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

func (s *JWTService) GenerateJWT(actor domain.Actor, expirationTime time.Time) (string, error) {
	claims := Claims{
		Role: string(actor.Role),
		StandardClaims: jwt.StandardClaims{
			Subject:   actor.UserID.String(),
			ExpiresAt: expirationTime.Unix(),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" || claims.Issuer != issuer {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
