package ports

import "context"

// CredentialStore holds the bearer credential between commands. A missing
// credential is a handled state (domain.ErrCredentialNotFound), not a
// failure.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
