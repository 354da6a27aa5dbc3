package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jiaebaek/CurriMap/internal/models"
	"github.com/jiaebaek/CurriMap/internal/validation"
)

func TestCatalogSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	catalog := NewCatalogService(env.books)
	ctx := context.Background()

	easy := env.insertBook(t, "Easy Reader", 0.8, 300, "animals")
	env.insertBook(t, "Harder Reader", 3.2, 4000, "adventure")

	t.Run("ar band filter", func(t *testing.T) {
		minAR, maxAR := 0.5, 1.5
		page, err := catalog.Search(ctx, models.BookSearchFilter{MinAR: &minAR, MaxAR: &maxAR})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if page.Total != 1 || len(page.Books) != 1 {
			t.Fatalf("Search() total = %d, books = %d, want 1 and 1", page.Total, len(page.Books))
		}
		if page.Books[0].ID != easy {
			t.Errorf("Search() returned book %d, want %d", page.Books[0].ID, easy)
		}
	})

	t.Run("theme filter", func(t *testing.T) {
		animals := env.themeByCode(t, "animals")
		page, err := catalog.Search(ctx, models.BookSearchFilter{ThemeIDs: []int64{animals.ID}})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if page.Total != 1 {
			t.Errorf("Search() total = %d, want 1", page.Total)
		}
	})

	t.Run("inverted band rejected", func(t *testing.T) {
		minAR, maxAR := 3.0, 1.0
		_, err := catalog.Search(ctx, models.BookSearchFilter{MinAR: &minAR, MaxAR: &maxAR})
		var vErr validation.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("Search() error = %v, want validation error", err)
		}
	})

	t.Run("limit defaults and clamps", func(t *testing.T) {
		page, err := catalog.Search(ctx, models.BookSearchFilter{Limit: 500})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if page.Limit != 20 {
			t.Errorf("Limit = %d, want default 20 for out-of-range request", page.Limit)
		}
	})
}

func TestGetBook(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	catalog := NewCatalogService(env.books)
	ctx := context.Background()

	id := env.insertBook(t, "Tagged Book", 1.2, 500, "animals", "adventure")

	book, err := catalog.GetBook(ctx, id)
	if err != nil {
		t.Fatalf("GetBook() error = %v", err)
	}
	if book.Title != "Tagged Book" {
		t.Errorf("title = %q", book.Title)
	}
	if len(book.Themes) != 2 {
		t.Errorf("themes = %d, want 2", len(book.Themes))
	}

	if _, err := catalog.GetBook(ctx, 9999); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("GetBook() missing error = %v, want ErrBookNotFound", err)
	}
}
