package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func testAnalysis(name string, createdAt time.Time) *Analysis {
	return &Analysis{
		ID:        NewID(),
		Name:      name,
		Source:    "a\nb",
		Mode:      "indent",
		CreatedAt: createdAt,
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	a := testAnalysis("first", time.Now())
	if err := s.Save(ctx, a); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := s.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "first" || got.Source != a.Source {
		t.Errorf("Get = %+v", got)
	}

	// Save with the same ID overwrites
	a.Name = "renamed"
	if err := s.Save(ctx, a); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, _ = s.Get(ctx, a.ID)
	if got.Name != "renamed" {
		t.Errorf("Name after overwrite = %s", got.Name)
	}

	// Delete
	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now()
	for i := 0; i < 5; i++ {
		a := testAnalysis(fmt.Sprintf("analysis-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := s.Save(ctx, a); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	// Newest first
	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("List returned %d, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Error("List should be sorted newest first")
		}
	}
	if all[0].Name != "analysis-4" {
		t.Errorf("newest = %s, want analysis-4", all[0].Name)
	}

	// Limit applies
	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d, want 2", len(limited))
	}
}

func TestNewID(t *testing.T) {
	if NewID() == NewID() {
		t.Error("NewID should return unique IDs")
	}
}
