// internal/app/system/auth/password.go
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt cost factor for leader passwords. Records
// hashed under a different cost still verify; this only affects new hashes.
const PasswordCost = 10

// HashPassword hashes a plaintext password. The plaintext is discarded by
// callers immediately after this returns; only the hash is ever stored.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
