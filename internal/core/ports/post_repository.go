package ports

import (
	"context"

	"github.com/postable/content-api/internal/core/domain"
)

// ListPostsFilter carries all query parameters for listing posts.
// AccountID is always enforced by the service layer (ownership scoping).
type ListPostsFilter struct {
	AccountID uint
	Search    string // optional: substring match on title, case-sensitive
	Limit     int    // max rows per page (capped by the service)
	Skip      int    // offset
}

// PostWithVotes pairs a post with its derived vote count, computed by an
// aggregate join at query time rather than a stored counter.
type PostWithVotes struct {
	Post  domain.Post `json:"post"`
	Votes int64       `json:"vote"`
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	// FindByID retrieves a post regardless of owner. Returns
	// domain.ErrPostNotFound when absent.
	FindByID(ctx context.Context, id uint) (*domain.Post, error)
	// FindOwnedByID retrieves a post with its vote count only when it is
	// owned by accountID; absence and foreign ownership are both reported as
	// domain.ErrPostNotFound.
	FindOwnedByID(ctx context.Context, id, accountID uint) (*PostWithVotes, error)
	List(ctx context.Context, filter ListPostsFilter) ([]PostWithVotes, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uint) error
}
