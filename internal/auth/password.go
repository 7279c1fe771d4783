package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// compareTimeout bounds a single password comparison. A comparison that
// does not finish in time is treated as a mismatch, not left pending.
const compareTimeout = 5 * time.Second

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext candidate against a bcrypt hash under
// a bounded time budget.
func CheckPassword(hash, plain string) bool {
	done := make(chan error, 1)
	go func() {
		done <- bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	}()

	select {
	case err := <-done:
		return err == nil
	case <-time.After(compareTimeout):
		return false
	}
}
