package auth_test

import (
	"testing"

	"github.com/jwstechnologies/hackportal/internal/app/system/auth"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash equals the plaintext")
	}

	if !auth.VerifyPassword(hash, "correct horse battery") {
		t.Error("correct password rejected")
	}
	if auth.VerifyPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
	if auth.VerifyPassword("", "anything") {
		t.Error("empty hash accepted")
	}
	if auth.VerifyPassword("not-a-bcrypt-hash", "anything") {
		t.Error("malformed hash accepted")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	a, err := auth.HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := auth.HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same input are identical")
	}
}
