package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/postable/content-api/internal/core/domain"
	"github.com/postable/content-api/internal/core/ports"
)

type voteKey struct{ userID, postID uint }

type stubVoteRepo struct {
	rows map[voteKey]struct{}
}

func newStubVoteRepo() *stubVoteRepo {
	return &stubVoteRepo{rows: make(map[voteKey]struct{})}
}

func (r *stubVoteRepo) Create(_ context.Context, vote *domain.Vote) error {
	k := voteKey{vote.UserID, vote.PostID}
	if _, ok := r.rows[k]; ok {
		return domain.ErrVoteExists
	}
	r.rows[k] = struct{}{}
	return nil
}

func (r *stubVoteRepo) Delete(_ context.Context, userID, postID uint) error {
	k := voteKey{userID, postID}
	if _, ok := r.rows[k]; !ok {
		return domain.ErrVoteNotFound
	}
	delete(r.rows, k)
	return nil
}

func TestVoteService_AddThenDuplicate(t *testing.T) {
	posts := newStubPostRepo()
	votes := newStubVoteRepo()
	svc := NewVoteService(posts, votes, zerolog.Nop())
	post := seedPost(t, posts, 1, "target")

	input := ports.CastVoteInput{UserID: 2, PostID: post.ID, Option: domain.VoteAdd}
	if err := svc.Cast(context.Background(), input); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if err := svc.Cast(context.Background(), input); !errors.Is(err, domain.ErrVoteExists) {
		t.Fatalf("expected ErrVoteExists, got %v", err)
	}
	if len(votes.rows) != 1 {
		t.Fatalf("expected exactly one vote row, got %d", len(votes.rows))
	}
}

func TestVoteService_WithdrawLifecycle(t *testing.T) {
	posts := newStubPostRepo()
	votes := newStubVoteRepo()
	svc := NewVoteService(posts, votes, zerolog.Nop())
	post := seedPost(t, posts, 1, "target")

	withdraw := ports.CastVoteInput{UserID: 2, PostID: post.ID, Option: domain.VoteWithdraw}
	if err := svc.Cast(context.Background(), withdraw); !errors.Is(err, domain.ErrVoteNotFound) {
		t.Fatalf("withdraw without vote: expected ErrVoteNotFound, got %v", err)
	}

	add := withdraw
	add.Option = domain.VoteAdd
	if err := svc.Cast(context.Background(), add); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Cast(context.Background(), withdraw); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if len(votes.rows) != 0 {
		t.Fatalf("expected no vote rows after withdraw, got %d", len(votes.rows))
	}
}

func TestVoteService_MissingPost(t *testing.T) {
	posts := newStubPostRepo()
	votes := newStubVoteRepo()
	svc := NewVoteService(posts, votes, zerolog.Nop())

	for _, option := range []int{domain.VoteAdd, domain.VoteWithdraw} {
		input := ports.CastVoteInput{UserID: 2, PostID: 1111, Option: option}
		if err := svc.Cast(context.Background(), input); !errors.Is(err, domain.ErrPostNotFound) {
			t.Fatalf("option %d: expected ErrPostNotFound, got %v", option, err)
		}
	}
}
