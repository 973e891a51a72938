package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/postable/content-api/internal/core/domain"
	"github.com/postable/content-api/internal/core/ports"
)

type stubPostRepo struct {
	posts  map[uint]*domain.Post
	votes  map[uint]int64
	nextID uint
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[uint]*domain.Post), votes: make(map[uint]int64), nextID: 1}
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) error {
	post.ID = r.nextID
	r.nextID++
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id uint) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) FindOwnedByID(_ context.Context, id, accountID uint) (*ports.PostWithVotes, error) {
	p, ok := r.posts[id]
	if !ok || p.AccountID != accountID {
		return nil, domain.ErrPostNotFound
	}
	return &ports.PostWithVotes{Post: *p, Votes: r.votes[id]}, nil
}

func (r *stubPostRepo) List(_ context.Context, filter ports.ListPostsFilter) ([]ports.PostWithVotes, error) {
	var matched []ports.PostWithVotes
	for id := uint(1); id < r.nextID; id++ {
		p, ok := r.posts[id]
		if !ok || p.AccountID != filter.AccountID {
			continue
		}
		if filter.Search != "" && !strings.Contains(p.Title, filter.Search) {
			continue
		}
		matched = append(matched, ports.PostWithVotes{Post: *p, Votes: r.votes[id]})
	}
	if filter.Skip >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Skip:]
	if len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *stubPostRepo) Update(_ context.Context, post *domain.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return domain.ErrPostNotFound
	}
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func seedPost(t *testing.T, repo *stubPostRepo, accountID uint, title string) *domain.Post {
	t.Helper()
	post := &domain.Post{Title: title, Text: "body", AccountID: accountID}
	if err := repo.Create(context.Background(), post); err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func TestPostService_Create_ForcesOwner(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, zerolog.Nop())

	post, err := svc.Create(context.Background(), ports.CreatePostInput{AccountID: 5, Title: "x", Text: "y"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if post.AccountID != 5 {
		t.Fatalf("expected account_id 5, got %d", post.AccountID)
	}
	if post.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestPostService_Get_OwnershipHidesExistence(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, zerolog.Nop())
	post := seedPost(t, repo, 1, "mine")

	if _, err := svc.Get(context.Background(), post.ID, 1); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	// Foreign read and missing read are indistinguishable.
	if _, err := svc.Get(context.Background(), post.ID, 2); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("foreign read: expected ErrPostNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 1111, 1); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("missing read: expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_WriteAsymmetry(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, zerolog.Nop())
	post := seedPost(t, repo, 1, "mine")

	// Writes to a foreign post reveal existence with ErrForbidden.
	if _, err := svc.Update(context.Background(), ports.UpdatePostInput{ID: post.ID, AccountID: 2, Title: "a", Text: "b"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign update: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), post.ID, 2); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign delete: expected ErrForbidden, got %v", err)
	}

	// Missing posts stay 404 on writes.
	if _, err := svc.Update(context.Background(), ports.UpdatePostInput{ID: 1111, AccountID: 1, Title: "a", Text: "b"}); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("missing update: expected ErrPostNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1111, 1); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("missing delete: expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Update_FullReplace(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, zerolog.Nop())
	post := seedPost(t, repo, 1, "before")

	updated, err := svc.Update(context.Background(), ports.UpdatePostInput{ID: post.ID, AccountID: 1, Title: "after", Text: "new body"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "after" || updated.Text != "new body" {
		t.Fatalf("unexpected post after update: %+v", updated)
	}
}

func TestPostService_List_DefaultsAndCaps(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, zerolog.Nop())
	for i := 0; i < 15; i++ {
		seedPost(t, repo, 1, "post")
	}
	seedPost(t, repo, 2, "foreign")

	// Default limit is 10.
	out, err := svc.List(context.Background(), ports.ListPostsInput{AccountID: 1})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(out) != 10 {
		t.Fatalf("expected 10 posts, got %d", len(out))
	}

	// Skip walks past the first page.
	out, err = svc.List(context.Background(), ports.ListPostsInput{AccountID: 1, Limit: 10, Skip: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 posts, got %d", len(out))
	}

	// Oversized limits are capped, not rejected.
	out, err = svc.List(context.Background(), ports.ListPostsInput{AccountID: 1, Limit: 10000})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(out) != 15 {
		t.Fatalf("expected 15 posts, got %d", len(out))
	}
}

func TestPostService_List_SearchSubstring(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, zerolog.Nop())
	seedPost(t, repo, 1, "beach holiday")
	seedPost(t, repo, 1, "work notes")

	out, err := svc.List(context.Background(), ports.ListPostsInput{AccountID: 1, Search: "holi"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(out) != 1 || out[0].Post.Title != "beach holiday" {
		t.Fatalf("unexpected search result: %+v", out)
	}
}
