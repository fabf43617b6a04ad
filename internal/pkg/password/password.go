// Package password hashes and compares account passwords with bcrypt.
package password

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for new hashes.
const Cost = 10

// ErrMismatch is returned when a password does not match its hash.
var ErrMismatch = errors.New("password mismatch")

// dummyHash is compared against when no account exists, so lookups for
// unknown emails cost the same as real ones.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), Cost)
	if err != nil {
		panic(err)
	}
	return h
})

func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare returns nil when plain matches hash and ErrMismatch otherwise.
func Compare(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return ErrMismatch
	}
	return nil
}

// CompareMissing performs a full comparison against a fixed hash and always
// returns ErrMismatch.
func CompareMissing(plain string) error {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(plain))
	return ErrMismatch
}
