package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/postable/content-api/internal/core/domain"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Create inserts the (user, post) vote row. The composite primary key turns
// concurrent duplicate inserts into ErrVoteExists; there is no application
// locking.
func (r *VoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrVoteExists
		}
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

func (r *VoteRepository) Delete(ctx context.Context, userID, postID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&domain.Vote{})
	if res.Error != nil {
		return fmt.Errorf("delete vote: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrVoteNotFound
	}
	return nil
}
