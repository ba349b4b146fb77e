// internal/service/kb/kb.go
package kb

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"diaspora-portal-service/internal/domain/kb"
	xerrors "diaspora-portal-service/internal/pkg/errors"
)

type Repository interface {
	ListPublished(ctx context.Context) ([]*kb.Article, error)
	Search(ctx context.Context, q string) ([]*kb.Article, error)
	GetBySlug(ctx context.Context, slug string) (*kb.Article, error)
	Save(ctx context.Context, a *kb.Article) error
	Delete(ctx context.Context, slug string) error
}

type ArticleService struct {
	repo   Repository
	logger *zap.Logger
}

func NewArticleService(repo Repository, logger *zap.Logger) *ArticleService {
	return &ArticleService{repo: repo, logger: logger}
}

func (s *ArticleService) ListPublished(ctx context.Context) ([]*kb.Article, error) {
	return s.repo.ListPublished(ctx)
}

// Search runs a substring search over the published articles. An empty or
// whitespace query falls back to the full listing.
func (s *ArticleService) Search(ctx context.Context, q string) ([]*kb.Article, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.repo.ListPublished(ctx)
	}
	return s.repo.Search(ctx, q)
}

func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*kb.Article, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *ArticleService) Save(ctx context.Context, req *kb.SaveArticleRequest) (*kb.Article, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if slug == "" {
		return nil, xerrors.ErrInvalidInput
	}

	article := &kb.Article{
		Slug:      slug,
		Title:     req.Title,
		Body:      req.Body,
		Tags:      req.Tags,
		Published: req.Published,
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}

	if err := s.repo.Save(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, slug string) error {
	return s.repo.Delete(ctx, slug)
}
