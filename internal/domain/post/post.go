package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrPostNotFound = errors.New("post not found")

// Post is content authored by a user. Only the owner-scoped operations used when
// an account is removed live here.
type Post struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Save(ctx context.Context, post *Post) error
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
