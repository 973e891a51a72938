package ports

import (
	"context"

	"github.com/postable/content-api/internal/core/domain"
)

// VoteRepository defines persistence operations for votes.
type VoteRepository interface {
	// Create inserts a vote row. Returns domain.ErrVoteExists when the
	// (user, post) pair already has one, including when a concurrent insert
	// won the race; the composite primary key rejects the second row.
	Create(ctx context.Context, vote *domain.Vote) error
	// Delete removes the (user, post) vote row. Returns domain.ErrVoteNotFound
	// when there is nothing to withdraw.
	Delete(ctx context.Context, userID, postID uint) error
}
