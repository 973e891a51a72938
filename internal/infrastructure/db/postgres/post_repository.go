package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/postable/content-api/internal/core/domain"
	"github.com/postable/content-api/internal/core/ports"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// postVotesRow is the flat result tuple of the aggregate join; mapped to
// typed structs here at the store boundary instead of lazy-loaded graphs.
type postVotesRow struct {
	ID        uint
	Title     string
	Text      string
	AccountID uint
	CreatedAt time.Time
	Votes     int64
}

func (row postVotesRow) toPortType() ports.PostWithVotes {
	return ports.PostWithVotes{
		Post: domain.Post{
			ID:        row.ID,
			Title:     row.Title,
			Text:      row.Text,
			AccountID: row.AccountID,
			CreatedAt: row.CreatedAt,
		},
		Votes: row.Votes,
	}
}

func (r *PostRepository) votesQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Select("posts.id, posts.title, posts.text, posts.account_id, posts.created_at, count(votes.post_id) AS votes").
		Joins("LEFT JOIN votes ON votes.post_id = posts.id").
		Group("posts.id")
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) FindOwnedByID(ctx context.Context, id, accountID uint) (*ports.PostWithVotes, error) {
	var row postVotesRow
	err := r.votesQuery(ctx).
		Where("posts.id = ? AND posts.account_id = ?", id, accountID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post with votes: %w", err)
	}
	out := row.toPortType()
	return &out, nil
}

func (r *PostRepository) List(ctx context.Context, filter ports.ListPostsFilter) ([]ports.PostWithVotes, error) {
	q := r.votesQuery(ctx).Where("posts.account_id = ?", filter.AccountID)
	if filter.Search != "" {
		q = q.Where("posts.title LIKE ?", "%"+filter.Search+"%")
	}

	var rows []postVotesRow
	err := q.Order("posts.id").
		Limit(filter.Limit).
		Offset(filter.Skip).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	out := make([]ports.PostWithVotes, len(rows))
	for i, row := range rows {
		out[i] = row.toPortType()
	}
	return out, nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Post{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
