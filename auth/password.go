package auth

import "golang.org/x/crypto/bcrypt"

// Hasher abstracts the password storage format so the scheme can be
// swapped without touching login or registration call sites.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(stored, plain string) bool
}

// BcryptHasher is the default Hasher.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Compare(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}
