package ports

import (
	"context"
	"encoding/json"
)

// Transport is the HTTP collaborator. Credential is an opaque bearer token;
// the empty string sends the request unauthenticated. Payloads come back as
// raw JSON for the caller to shape.
type Transport interface {
	Get(ctx context.Context, path string, credential string) (json.RawMessage, error)
	PostJSON(ctx context.Context, path string, body any, credential string) (json.RawMessage, error)
	Download(ctx context.Context, path string, credential string) ([]byte, error)
}
