package password

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptPasswordService hashes and verifies passwords with bcrypt. A
// semaphore caps concurrent hashing so the deliberately slow work cannot
// starve unrelated requests; acquisition respects the caller's context.
type BcryptPasswordService struct {
	cost int
	sem  chan struct{}
}

func NewBcryptPasswordService(cost, maxConcurrent int) *BcryptPasswordService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &BcryptPasswordService{
		cost: cost,
		sem:  make(chan struct{}, maxConcurrent),
	}
}

func (s *BcryptPasswordService) HashPassword(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	if err := s.acquire(ctx); err != nil {
		return "", err
	}
	defer s.release()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *BcryptPasswordService) VerifyPassword(ctx context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, nil
	}

	if err := s.acquire(ctx); err != nil {
		return false, err
	}
	defer s.release()

	// Mismatch and malformed digests are both a plain "no", never a fault.
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil, nil
}

func (s *BcryptPasswordService) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *BcryptPasswordService) release() {
	<-s.sem
}
