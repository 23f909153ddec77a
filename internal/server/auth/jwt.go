// Package auth implements the passcode gate: bcrypt verification of the
// shared passcode and HS256 access tokens.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cjmtools/caseintake/internal/common"
)

// Claims carries the registered claims plus the station identifier the token
// was issued to.
type Claims struct {
	jwt.RegisteredClaims
	StationID string
}

func GenerateToken(stationID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		StationID: stationID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetStationIDFromToken verifies the signature and expiry of tokenString and
// returns the station it was issued to.
func GetStationIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.StationID, nil
}
