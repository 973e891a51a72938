package ports

import (
	"context"

	"github.com/postable/content-api/internal/core/domain"
)

// CreatePostInput carries the data needed to create a post. AccountID comes
// from the resolved identity, never from the client payload.
type CreatePostInput struct {
	AccountID uint
	Title     string
	Text      string
}

// UpdatePostInput carries a full-replace update: both fields are applied.
type UpdatePostInput struct {
	ID        uint
	AccountID uint
	Title     string
	Text      string
}

// ListPostsInput carries all parameters for the list endpoint.
type ListPostsInput struct {
	AccountID uint
	Search    string
	Limit     int
	Skip      int
}

// PostService defines use-case operations for posts.
type PostService interface {
	List(ctx context.Context, input ListPostsInput) ([]PostWithVotes, error)
	// Get returns an owned post with its vote count; foreign ownership is
	// indistinguishable from absence (domain.ErrPostNotFound).
	Get(ctx context.Context, id, accountID uint) (*PostWithVotes, error)
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	// Update and Delete report domain.ErrPostNotFound for missing posts and
	// domain.ErrForbidden for posts owned by someone else.
	Update(ctx context.Context, input UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, id, accountID uint) error
}
