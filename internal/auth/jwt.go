package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidJWTToken        = errors.New("JWT token is invalid")
	ErrExpiredJWTToken        = errors.New("JWT token is expired")
	ErrInvalidJWTRefreshToken = errors.New("JWT Refresh token is invalid")
	ErrMissingJWTSecret       = errors.New("JWT_SECRET is not set in environment variables")
)

const defaultJWTRefreshDuration = 720 * time.Hour
const defaultJWTDuration = 10 * time.Minute

type JWTManagerInterface interface {
	GenerateAccessJWT(userID string, duration time.Duration) (string, error)
	ValidateAccessToken(tokenString string) (string, error)
	GenerateRefreshJWT(userID, tokenHash string, duration time.Duration) (string, error)
	ValidateRefreshToken(tokenString, tokenHash string) error
	ExtractUserIDFromRefreshToken(tokenString string) (string, error)
}

type AccessTokenCustomClaims struct {
	UserID string `json:"user_id"`
	jwt.StandardClaims
}

type RefreshTokenCustomClaims struct {
	UserID string `json:"user_id"`
	CusKey string `json:"cus_key"`
	jwt.StandardClaims
}

type JWTManager struct {
	secret string
}

func NewJWTManager() (JWTManagerInterface, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return &JWTManager{secret: jwtSecret}, nil
}

// generateCustomKey binds a refresh token to the user's current hash token,
// so rotating the hash token invalidates every outstanding refresh token.
func (j *JWTManager) generateCustomKey(userID, tokenHash string) string {
	h := hmac.New(sha256.New, []byte(tokenHash))
	h.Write([]byte(userID))
	return hex.EncodeToString(h.Sum(nil))
}

func (j *JWTManager) GenerateRefreshJWT(userID, tokenHash string, duration time.Duration) (string, error) {
	claims := &RefreshTokenCustomClaims{
		UserID: userID,
		CusKey: j.generateCustomKey(userID, tokenHash),
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(duration).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *JWTManager) GenerateAccessJWT(userID string, duration time.Duration) (string, error) {
	claims := &AccessTokenCustomClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *JWTManager) keyFunc(token *jwt.Token) (interface{}, error) {
	return []byte(j.secret), nil
}

func mapValidationError(err error) error {
	var validationErr *jwt.ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return ErrExpiredJWTToken
		}
	}
	return err
}

func (j *JWTManager) ValidateAccessToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessTokenCustomClaims{}, j.keyFunc)
	if err != nil {
		return "", mapValidationError(err)
	}

	claims, ok := token.Claims.(*AccessTokenCustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidJWTToken
	}

	return claims.UserID, nil
}

func (j *JWTManager) ExtractUserIDFromRefreshToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshTokenCustomClaims{}, j.keyFunc)
	if err != nil {
		return "", mapValidationError(err)
	}

	claims, ok := token.Claims.(*RefreshTokenCustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidJWTToken
	}

	return claims.UserID, nil
}

func (j *JWTManager) ValidateRefreshToken(tokenString, tokenHash string) error {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshTokenCustomClaims{}, j.keyFunc)
	if err != nil {
		return mapValidationError(err)
	}

	claims, ok := token.Claims.(*RefreshTokenCustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return ErrInvalidJWTToken
	}

	expectedCusKey := j.generateCustomKey(claims.UserID, tokenHash)
	if claims.CusKey != expectedCusKey {
		return ErrInvalidJWTRefreshToken
	}

	return nil
}
