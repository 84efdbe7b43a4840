package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher derives and checks salted one-way password hashes. bcrypt
// generates a fresh random salt per call, so hashing the same password twice
// yields two different hashes that both verify.
type PasswordHasher struct {
	cost  int
	dummy []byte
}

// NewPasswordHasher creates a hasher with the given bcrypt cost. A cost of
// zero selects the bcrypt default.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	// Precomputed at the same cost so VerifyDummy burns exactly one real
	// comparison's worth of work.
	dummy, err := bcrypt.GenerateFromPassword([]byte("taskdeck-dummy-credential"), cost)
	if err != nil {
		return nil, err
	}
	return &PasswordHasher{cost: cost, dummy: dummy}, nil
}

// Hash returns the salted bcrypt hash of a plaintext password.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored hash.
func (h *PasswordHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// VerifyDummy compares the plaintext against a throwaway hash and discards the
// result. Callers use it on the unknown-username signin path so that failure
// costs the same as a wrong-password failure.
func (h *PasswordHasher) VerifyDummy(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
}
