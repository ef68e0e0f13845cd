package chain

import (
	"context"
	"errors"
	"fmt"

	envstore "github.com/khyahahati/ai-doc-builder/internal/adapters/credentials/env"
	filestore "github.com/khyahahati/ai-doc-builder/internal/adapters/credentials/file"
	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/khyahahati/ai-doc-builder/internal/ports"
)

// Store chains two credential stores: reads prefer the primary and fall back
// to the secondary, writes land wherever the primary accepts them. An env
// primary lets DOCB_TOKEN override the stored login token without touching
// disk.
type Store struct {
	primary  ports.CredentialStore
	fallback ports.CredentialStore
}

var _ ports.CredentialStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary credential store is nil")
	errNilFallbackStore = errors.New("fallback credential store is nil")
)

func NewStore(primary ports.CredentialStore, fallback ports.CredentialStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewEnvFirstWithFileFallback(envPrefix string, fileRoot string) (*Store, error) {
	return NewStore(envstore.NewStore(envPrefix), filestore.NewStore(fileRoot))
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}
	if errors.Is(err, domain.ErrCredentialNotFound) && errors.Is(fallbackErr, domain.ErrCredentialNotFound) {
		return "", fallbackErr
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if err == nil || errors.Is(err, envstore.ErrReadOnly) {
		if fallbackErr := s.fallback.Delete(ctx, key); fallbackErr != nil {
			return fallbackErr
		}
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
