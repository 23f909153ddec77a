package auth

import "golang.org/x/crypto/bcrypt"

// HashPasscode returns the bcrypt hash of a plaintext passcode, for use in
// the server configuration.
func HashPasscode(passcode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasscode reports whether the plaintext passcode matches the stored
// bcrypt hash.
func CheckPasscode(hash, passcode string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}
