package ports

import "context"

// LoginLimiter throttles credential checks per account to slow down
// online password guessing.
type LoginLimiter interface {
	// Allow reports whether another attempt for key may proceed.
	Allow(ctx context.Context, key string) (bool, error)
	// Reset clears the attempt counter after a successful login.
	Reset(ctx context.Context, key string) error
}
