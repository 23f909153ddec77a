package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("station-1", secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	stationID, err := GetStationIDFromToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "station-1", stationID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("station-1", []byte("right"), time.Minute)
	require.NoError(t, err)

	_, err = GetStationIDFromToken(token, []byte("wrong"))
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken("station-1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetStationIDFromToken(token, secret)
	require.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := GetStationIDFromToken("not-a-token", []byte("secret"))
	require.Error(t, err)
}
