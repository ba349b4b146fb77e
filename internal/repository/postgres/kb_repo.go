// internal/repository/postgres/kb_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"diaspora-portal-service/internal/domain/kb"
	xerrors "diaspora-portal-service/internal/pkg/errors"
)

type ArticleRepository struct {
	db *pgxpool.Pool
}

func NewArticleRepository(db *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{db: db}
}

const articleColumns = `id, slug, title, body, tags, published, created_at, updated_at`

// ListPublished returns all published articles, newest first.
func (r *ArticleRepository) ListPublished(ctx context.Context) ([]*kb.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM kb_articles
		WHERE published = true
		ORDER BY updated_at DESC
	`, articleColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// Search does a case-insensitive substring match over title and body.
// Plain ILIKE, not full-text search; good enough for the help pages.
func (r *ArticleRepository) Search(ctx context.Context, q string) ([]*kb.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM kb_articles
		WHERE published = true
		  AND (title ILIKE '%%' || $1 || '%%' OR body ILIKE '%%' || $1 || '%%')
		ORDER BY updated_at DESC
	`, articleColumns)

	rows, err := r.db.Query(ctx, query, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// GetBySlug retrieves one article regardless of publish state.
func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*kb.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM kb_articles WHERE slug = $1`, articleColumns)

	var a kb.Article
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&a.ID, &a.Slug, &a.Title, &a.Body, pq.Array(&a.Tags),
		&a.Published, &a.CreatedAt, &a.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return &a, nil
}

// Save inserts or replaces an article by slug.
func (r *ArticleRepository) Save(ctx context.Context, a *kb.Article) error {
	query := `
		INSERT INTO kb_articles (slug, title, body, tags, published)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			tags = EXCLUDED.tags,
			published = EXCLUDED.published,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		a.Slug, a.Title, a.Body, pq.Array(a.Tags), a.Published,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}
	return nil
}

// Delete removes an article by slug.
func (r *ArticleRepository) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM kb_articles WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func scanArticles(rows pgx.Rows) ([]*kb.Article, error) {
	var out []*kb.Article
	for rows.Next() {
		var a kb.Article
		if err := rows.Scan(
			&a.ID, &a.Slug, &a.Title, &a.Body, pq.Array(&a.Tags),
			&a.Published, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
