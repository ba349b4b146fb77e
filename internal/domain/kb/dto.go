// internal/domain/kb/dto.go
package kb

// SaveArticleRequest creates or updates a knowledge-base article.
type SaveArticleRequest struct {
	Slug      string   `json:"slug" binding:"required"`
	Title     string   `json:"title" binding:"required"`
	Body      string   `json:"body" binding:"required"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}
