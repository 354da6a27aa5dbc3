package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jiaebaek/CurriMap/internal/models"
	"github.com/jiaebaek/CurriMap/internal/repository"
	"github.com/jiaebaek/CurriMap/internal/validation"
)

// ErrBookNotFound means the requested book does not exist
var ErrBookNotFound = errors.New("book not found")

// BookPage is one page of search results with its pagination envelope
type BookPage struct {
	Books  []models.BookDetail `json:"books"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

// CatalogService handles read access to the book catalog
type CatalogService struct {
	bookRepo *repository.BookRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(bookRepo *repository.BookRepository) *CatalogService {
	return &CatalogService{bookRepo: bookRepo}
}

// Search retrieves a page of books matching the filter
func (s *CatalogService) Search(ctx context.Context, filter models.BookSearchFilter) (*BookPage, error) {
	if filter.MinAR != nil && filter.MaxAR != nil && *filter.MinAR > *filter.MaxAR {
		return nil, validation.ValidationError{Field: "min_ar", Message: "min_ar must not exceed max_ar"}
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	books, total, err := s.bookRepo.SearchBooks(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &BookPage{Books: books, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// GetBook retrieves one book with its tags
func (s *CatalogService) GetBook(ctx context.Context, bookID int64) (*models.BookDetail, error) {
	book, err := s.bookRepo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// ListThemes retrieves all themes
func (s *CatalogService) ListThemes(ctx context.Context) ([]models.Theme, error) {
	return s.bookRepo.ListThemes(ctx)
}

// ListMoods retrieves all moods
func (s *CatalogService) ListMoods(ctx context.Context) ([]models.Mood, error) {
	return s.bookRepo.ListMoods(ctx)
}
