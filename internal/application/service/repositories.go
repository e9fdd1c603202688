package service

import (
	"context"
	"encoding/json"
)

// RepositoryProvider lists the public repositories of a source-hosting user.
// The body is returned as received.
type RepositoryProvider interface {
	ListRepositories(ctx context.Context, username string) (json.RawMessage, error)
}
