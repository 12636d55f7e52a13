package auth

import (
	"time"

	"hris-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type JWTCustomClaims struct {
	UserID   uint            `json:"user_id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken: HS256 imzalı, süreli bearer token üretir.
// Token sadece kimlik taşır; rol kontrolleri her istekte veritabanındaki
// güncel kullanıcı üzerinden yapılır.
func GenerateToken(secret string, expiryHours int, user *models.User) (string, error) {
	if expiryHours <= 0 {
		expiryHours = 24
	}

	claims := &JWTCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiryHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
