package ports

import "context"

// CastVoteInput carries a vote request. Option is validated at the boundary
// to be 0 (withdraw) or 1 (add) before reaching the service.
type CastVoteInput struct {
	UserID uint
	PostID uint
	Option int
}

// VoteService applies the vote-transition rules: add fails on duplicates,
// withdraw fails when there is nothing to remove, and both fail when the
// target post does not exist.
type VoteService interface {
	Cast(ctx context.Context, input CastVoteInput) error
}
