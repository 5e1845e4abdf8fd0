package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/testutil"
)

func TestPostgresStoreRoundTrip(t *testing.T) {
	pool := testutil.PostgresPool(t)
	s := NewPostgresStore(pool)
	ctx := context.Background()
	owner := testutil.TestOwner(t)

	now := time.Now().UTC().Truncate(time.Microsecond)
	r := domain.NewResume(owner, now)
	r.Title = "Backend"
	r.PersonalInfo = &model.PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com"}
	r.Experiences = []model.Experience{{Position: "Analyst", Company: "Engine", Current: true, Description: []string{"Notes"}}}
	t.Cleanup(func() { _ = s.Delete(context.Background(), r.ID, owner) })

	if err := s.Create(ctx, r); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Get(ctx, r.ID, owner)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PersonalInfo.FullName != "Ada Lovelace" || got.Template != domain.DefaultTemplate {
		t.Fatalf("unexpected resume %+v", got)
	}
	if len(got.Experiences) != 1 || got.Experiences[0].Description[0] != "Notes" {
		t.Fatalf("experiences = %+v", got.Experiences)
	}
	if got.Skills == nil || len(got.Skills) != 0 {
		t.Fatalf("skills should decode as an empty list, got %#v", got.Skills)
	}

	list, err := s.List(ctx, owner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].FullName != "Ada Lovelace" {
		t.Fatalf("List = %+v", list)
	}
}

func TestPostgresStoreOwnerScoping(t *testing.T) {
	pool := testutil.PostgresPool(t)
	s := NewPostgresStore(pool)
	ctx := context.Background()
	owner := testutil.TestOwner(t)

	r := domain.NewResume(owner, time.Now().UTC())
	t.Cleanup(func() { _ = s.Delete(context.Background(), r.ID, owner) })
	if err := s.Create(ctx, r); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := s.Get(ctx, r.ID, owner+"-other"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get as other owner: got %v", err)
	}
	other := r.Clone()
	other.OwnerID = owner + "-other"
	if err := s.Update(ctx, other); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update as other owner: got %v", err)
	}
	if err := s.Delete(ctx, r.ID, owner+"-other"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete as other owner: got %v", err)
	}
	if err := s.Delete(ctx, r.ID, owner); err != nil {
		t.Fatalf("Delete as owner: %v", err)
	}
}
