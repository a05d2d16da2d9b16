package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// JWTClaims defines the payload for the JWT.
type JWTClaims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	EmpresaID int64  `json:"empresaId"`
	jwt.RegisteredClaims
}

// Hashing
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// JwtSecret and tokenTTL are set once at startup from config.
var (
	JwtSecret []byte
	tokenTTL  = 24 * time.Hour
)

// Configure installs the signing secret and token lifetime. expiration is a
// Go duration string; empty or invalid keeps the 24h default.
func Configure(secret, expiration string) {
	JwtSecret = []byte(secret)
	if d, err := time.ParseDuration(expiration); err == nil && d > 0 {
		tokenTTL = d
	}
}

func GenerateJWT(email, role string, empresaID int64) (string, error) {
	expirationTime := time.Now().Add(tokenTTL)
	claims := &JWTClaims{
		Email:     email,
		Role:      role,
		EmpresaID: empresaID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtSecret)
}

// ParseJWT validates tokenString and returns its claims.
func ParseJWT(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
