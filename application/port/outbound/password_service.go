package outbound

import "context"

// PasswordService hashes and verifies passwords with a deliberately slow
// adaptive algorithm. Hashing salts per call, so two hashes of the same
// password differ while both verify. The context bounds the wait for
// hashing capacity; the work itself is CPU-bound.
type PasswordService interface {
	HashPassword(ctx context.Context, password string) (string, error)
	// VerifyPassword reports false, not an error, on mismatch or a
	// malformed digest.
	VerifyPassword(ctx context.Context, password, hash string) (bool, error)
}
