package job

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeStore struct {
	postings []Posting
	nextID   int
}

func (f *fakeStore) Create(_ context.Context, postedBy string, params CreatePostingParams) (Posting, error) {
	f.nextID++
	p := Posting{
		ID:            fmt.Sprintf("job-%d", f.nextID),
		Title:         params.Title,
		CompanyName:   params.CompanyName,
		Description:   params.Description,
		MinCGPA:       params.MinCGPA,
		SalaryPackage: params.SalaryPackage,
		Deadline:      params.Deadline,
		PostedBy:      postedBy,
		CreatedAt:     time.Now(),
	}
	f.postings = append([]Posting{p}, f.postings...)
	return p, nil
}

func (f *fakeStore) List(_ context.Context) ([]Posting, error) {
	return f.postings, nil
}

func TestService_CreateRequiresTitle(t *testing.T) {
	svc := NewService(&fakeStore{})

	_, err := svc.Create(context.Background(), "user-1", CreatePostingParams{Title: "   "})
	if !errors.Is(err, ErrMissingTitle) {
		t.Fatalf("expected ErrMissingTitle, got %v", err)
	}

	if _, err := svc.Create(context.Background(), "user-1", CreatePostingParams{Title: "SRE"}); err != nil {
		t.Fatalf("create with title: %v", err)
	}
}

func TestService_ListNewestFirst(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	for _, title := range []string{"first", "second", "third"} {
		if _, err := svc.Create(context.Background(), "user-1", CreatePostingParams{Title: title}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}

	postings, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(postings) != 3 {
		t.Fatalf("expected 3 postings, got %d", len(postings))
	}
	if postings[0].Title != "third" {
		t.Fatalf("expected newest posting first, got %q", postings[0].Title)
	}
}
