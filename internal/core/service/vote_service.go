package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/postable/content-api/internal/core/domain"
	"github.com/postable/content-api/internal/core/ports"
)

// VoteService applies vote-transition rules on top of the store's composite
// primary key. The model is binary presence/absence: option 1 inserts the
// (user, post) row, option 0 removes it.
type VoteService struct {
	posts  ports.PostRepository
	votes  ports.VoteRepository
	logger zerolog.Logger
}

func NewVoteService(posts ports.PostRepository, votes ports.VoteRepository, logger zerolog.Logger) *VoteService {
	return &VoteService{posts: posts, votes: votes, logger: logger}
}

// Cast adds or withdraws a vote. A concurrent duplicate add is resolved by
// the database rejecting the second insert, surfaced as ErrVoteExists.
func (s *VoteService) Cast(ctx context.Context, input ports.CastVoteInput) error {
	if _, err := s.posts.FindByID(ctx, input.PostID); err != nil {
		return err
	}

	switch input.Option {
	case domain.VoteAdd:
		vote := &domain.Vote{UserID: input.UserID, PostID: input.PostID}
		if err := s.votes.Create(ctx, vote); err != nil {
			return err
		}
		s.logger.Info().Uint("user_id", input.UserID).Uint("post_id", input.PostID).Msg("vote added")
		return nil
	case domain.VoteWithdraw:
		if err := s.votes.Delete(ctx, input.UserID, input.PostID); err != nil {
			return err
		}
		s.logger.Info().Uint("user_id", input.UserID).Uint("post_id", input.PostID).Msg("vote withdrawn")
		return nil
	default:
		// Unreachable when boundary validation holds.
		return fmt.Errorf("invalid vote option %d", input.Option)
	}
}
