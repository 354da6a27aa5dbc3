package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jiaebaek/CurriMap/internal/database"
	"github.com/jiaebaek/CurriMap/internal/models"
)

const bookColumns = `b.id, b.title, b.author, b.ar_level, b.word_count,
	COALESCE(b.tip, ''), COALESCE(b.keywords, ''),
	COALESCE(b.purchase_url, ''), COALESCE(b.cover_url, ''), b.created_at`

// BookRepository handles database operations for the book catalog
type BookRepository struct {
	db *database.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *database.DB) *BookRepository {
	return &BookRepository{db: db}
}

// GetBookByID retrieves a book with its theme and mood tags
func (r *BookRepository) GetBookByID(ctx context.Context, bookID int64) (*models.BookDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM books b WHERE b.id = ?", bookColumns)
	book, err := scanBook(r.db.QueryRow(ctx, query, bookID))
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, nil
	}

	detail := &models.BookDetail{Book: *book}
	themes, err := r.getThemesForBooks(ctx, []int64{bookID})
	if err != nil {
		return nil, err
	}
	moods, err := r.getMoodsForBooks(ctx, []int64{bookID})
	if err != nil {
		return nil, err
	}
	detail.Themes = themes[bookID]
	detail.Moods = moods[bookID]
	if detail.Themes == nil {
		detail.Themes = []models.Theme{}
	}
	if detail.Moods == nil {
		detail.Moods = []models.Mood{}
	}
	return detail, nil
}

// SearchBooks retrieves a page of books matching the filter, with the total
// match count for pagination
func (r *BookRepository) SearchBooks(ctx context.Context, filter models.BookSearchFilter) ([]models.BookDetail, int, error) {
	var conditions []string
	var args []interface{}

	if filter.MinAR != nil {
		conditions = append(conditions, "b.ar_level >= ?")
		args = append(args, *filter.MinAR)
	}
	if filter.MaxAR != nil {
		conditions = append(conditions, "b.ar_level <= ?")
		args = append(args, *filter.MaxAR)
	}
	if len(filter.ThemeIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			"b.id IN (SELECT book_id FROM book_themes WHERE theme_id IN (%s))",
			placeholders(len(filter.ThemeIDs))))
		args = append(args, int64Args(filter.ThemeIDs)...)
	}
	if len(filter.MoodIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			"b.id IN (SELECT book_id FROM book_moods WHERE mood_id IN (%s))",
			placeholders(len(filter.MoodIDs))))
		args = append(args, int64Args(filter.MoodIDs)...)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM books b" + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM books b%s ORDER BY b.id ASC LIMIT ? OFFSET ?", bookColumns, where)
	args = append(args, filter.Limit, filter.Offset)

	books, err := r.queryBooks(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	details, err := r.attachTags(ctx, books)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

// FindCandidates retrieves up to limit books inside the AR band, excluding
// the given book IDs, optionally restricted to books tagged with any of the
// given themes. Ordered by ID for a stable window.
func (r *BookRepository) FindCandidates(ctx context.Context, minAR, maxAR float64, themeIDs, excludeIDs []int64, limit int) ([]models.Book, error) {
	conditions := []string{"b.ar_level >= ?", "b.ar_level <= ?"}
	args := []interface{}{minAR, maxAR}

	if len(themeIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			"b.id IN (SELECT book_id FROM book_themes WHERE theme_id IN (%s))",
			placeholders(len(themeIDs))))
		args = append(args, int64Args(themeIDs)...)
	}
	if len(excludeIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("b.id NOT IN (%s)", placeholders(len(excludeIDs))))
		args = append(args, int64Args(excludeIDs)...)
	}

	query := fmt.Sprintf("SELECT %s FROM books b WHERE %s ORDER BY b.id ASC LIMIT ?",
		bookColumns, strings.Join(conditions, " AND "))
	args = append(args, limit)

	return r.queryBooks(ctx, query, args...)
}

// ListThemes retrieves all themes ordered by name
func (r *BookRepository) ListThemes(ctx context.Context) ([]models.Theme, error) {
	rows, err := r.db.Query(ctx, "SELECT id, code, name FROM themes ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query themes: %w", err)
	}
	defer rows.Close()

	var themes []models.Theme
	for rows.Next() {
		var theme models.Theme
		if err := rows.Scan(&theme.ID, &theme.Code, &theme.Name); err != nil {
			return nil, fmt.Errorf("failed to scan theme: %w", err)
		}
		themes = append(themes, theme)
	}
	return themes, rows.Err()
}

// ListMoods retrieves all moods ordered by name
func (r *BookRepository) ListMoods(ctx context.Context) ([]models.Mood, error) {
	rows, err := r.db.Query(ctx, "SELECT id, code, name FROM moods ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query moods: %w", err)
	}
	defer rows.Close()

	var moods []models.Mood
	for rows.Next() {
		var mood models.Mood
		if err := rows.Scan(&mood.ID, &mood.Code, &mood.Name); err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		moods = append(moods, mood)
	}
	return moods, rows.Err()
}

func (r *BookRepository) queryBooks(ctx context.Context, query string, args ...interface{}) ([]models.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		err := rows.Scan(
			&book.ID, &book.Title, &book.Author, &book.ARLevel, &book.WordCount,
			&book.Tip, &book.Keywords, &book.PurchaseURL, &book.CoverURL, &book.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (r *BookRepository) attachTags(ctx context.Context, books []models.Book) ([]models.BookDetail, error) {
	details := make([]models.BookDetail, 0, len(books))
	if len(books) == 0 {
		return details, nil
	}

	ids := make([]int64, len(books))
	for i, book := range books {
		ids[i] = book.ID
	}
	themes, err := r.getThemesForBooks(ctx, ids)
	if err != nil {
		return nil, err
	}
	moods, err := r.getMoodsForBooks(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, book := range books {
		detail := models.BookDetail{Book: book, Themes: themes[book.ID], Moods: moods[book.ID]}
		if detail.Themes == nil {
			detail.Themes = []models.Theme{}
		}
		if detail.Moods == nil {
			detail.Moods = []models.Mood{}
		}
		details = append(details, detail)
	}
	return details, nil
}

func (r *BookRepository) getThemesForBooks(ctx context.Context, bookIDs []int64) (map[int64][]models.Theme, error) {
	query := fmt.Sprintf(`
		SELECT bt.book_id, t.id, t.code, t.name
		FROM book_themes bt
		JOIN themes t ON t.id = bt.theme_id
		WHERE bt.book_id IN (%s)
		ORDER BY t.name ASC
	`, placeholders(len(bookIDs)))

	rows, err := r.db.Query(ctx, query, int64Args(bookIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query book themes: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.Theme)
	for rows.Next() {
		var bookID int64
		var theme models.Theme
		if err := rows.Scan(&bookID, &theme.ID, &theme.Code, &theme.Name); err != nil {
			return nil, fmt.Errorf("failed to scan book theme: %w", err)
		}
		result[bookID] = append(result[bookID], theme)
	}
	return result, rows.Err()
}

func (r *BookRepository) getMoodsForBooks(ctx context.Context, bookIDs []int64) (map[int64][]models.Mood, error) {
	query := fmt.Sprintf(`
		SELECT bm.book_id, m.id, m.code, m.name
		FROM book_moods bm
		JOIN moods m ON m.id = bm.mood_id
		WHERE bm.book_id IN (%s)
		ORDER BY m.name ASC
	`, placeholders(len(bookIDs)))

	rows, err := r.db.Query(ctx, query, int64Args(bookIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query book moods: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.Mood)
	for rows.Next() {
		var bookID int64
		var mood models.Mood
		if err := rows.Scan(&bookID, &mood.ID, &mood.Code, &mood.Name); err != nil {
			return nil, fmt.Errorf("failed to scan book mood: %w", err)
		}
		result[bookID] = append(result[bookID], mood)
	}
	return result, rows.Err()
}

func scanBook(row *sql.Row) (*models.Book, error) {
	book := &models.Book{}
	err := row.Scan(
		&book.ID, &book.Title, &book.Author, &book.ARLevel, &book.WordCount,
		&book.Tip, &book.Keywords, &book.PurchaseURL, &book.CoverURL, &book.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

// placeholders builds a comma separated list of n query placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
