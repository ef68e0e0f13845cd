package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/khyahahati/ai-doc-builder/internal/ports"
)

var ErrReadOnly = errors.New("environment credential store is read-only")

// Store resolves credentials from environment variables. Keys map to
// variable names by uppercasing and replacing separators, prefixed with the
// configured prefix: key "token" with prefix "DOCB" reads DOCB_TOKEN. The
// store is read-only; writes fall through to the next store in a chain.
type Store struct {
	prefix string
}

var _ ports.CredentialStore = (*Store)(nil)

func NewStore(prefix string) *Store {
	return &Store{prefix: prefix}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := s.varForKey(key)
	if err != nil {
		return "", err
	}

	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return "", fmt.Errorf("env credential %s: %w", name, domain.ErrCredentialNotFound)
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrReadOnly
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrReadOnly
}

func (s *Store) varForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("credential key is empty")
	}

	name := strings.ToUpper(strings.NewReplacer("-", "_", "/", "_", ".", "_").Replace(trimmed))
	if s.prefix != "" {
		name = s.prefix + "_" + name
	}
	return name, nil
}
