package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/postable/content-api/internal/core/domain"
	"github.com/postable/content-api/internal/core/ports"
)

const (
	defaultPostLimit = 10
	maxPostLimit     = 100
)

// PostService implements post CRUD with ownership checks. Reads of foreign
// posts report ErrPostNotFound; writes report ErrForbidden. The asymmetry is
// a fixed behavioral contract.
type PostService struct {
	repo   ports.PostRepository
	logger zerolog.Logger
}

func NewPostService(repo ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger}
}

// List returns the caller's posts with their vote counts, optionally filtered
// by a title substring, paginated by skip/limit.
func (s *PostService) List(ctx context.Context, input ports.ListPostsInput) ([]ports.PostWithVotes, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPostLimit
	}
	if limit > maxPostLimit {
		limit = maxPostLimit
	}
	skip := input.Skip
	if skip < 0 {
		skip = 0
	}

	return s.repo.List(ctx, ports.ListPostsFilter{
		AccountID: input.AccountID,
		Search:    input.Search,
		Limit:     limit,
		Skip:      skip,
	})
}

func (s *PostService) Get(ctx context.Context, id, accountID uint) (*ports.PostWithVotes, error) {
	return s.repo.FindOwnedByID(ctx, id, accountID)
}

// Create inserts a post owned by input.AccountID, which comes from the
// resolved identity rather than the client payload.
func (s *PostService) Create(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	post := &domain.Post{
		Title:     input.Title,
		Text:      input.Text,
		AccountID: input.AccountID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("post_id", post.ID).Uint("account_id", post.AccountID).Msg("post created")
	return post, nil
}

// Update applies full-replace semantics: title and text are both overwritten.
func (s *PostService) Update(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if post.AccountID != input.AccountID {
		return nil, domain.ErrForbidden
	}

	post.Title = input.Title
	post.Text = input.Text
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id, accountID uint) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AccountID != accountID {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Uint("post_id", id).Msg("post deleted")
	return nil
}
