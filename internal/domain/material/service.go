package material

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"offerstock/internal/core/apperror"
	"offerstock/pkg/logger"
)

var articlePattern = regexp.MustCompile(`^[A-Z0-9]+(?:-[A-Z0-9]+)*$`)

// NormalizeArticle trims and upper-cases an article code and checks that it
// is made of dash-separated alphanumeric groups, e.g. "TA01-16-205-55-94V".
func NormalizeArticle(raw string) (string, error) {
	article := strings.ToUpper(strings.TrimSpace(raw))
	if article == "" {
		return "", apperror.NewValidation("article is required").WithFieldError("article", "must not be blank")
	}
	if !articlePattern.MatchString(article) {
		return "", apperror.NewValidation("invalid article").
			WithFieldError("article", "must contain only letters, digits and single dashes")
	}
	return article, nil
}

// Service resolves material stock for HTTP callers.
type Service struct {
	repo QuantityByArticle
}

// NewService creates a new material service.
func NewService(repo QuantityByArticle) *Service {
	return &Service{repo: repo}
}

// FindByArticle returns the stock of the SKU carrying article.
// An unknown article is reported as NotFound.
func (s *Service) FindByArticle(ctx context.Context, raw string) (*ArticleQuantity, error) {
	article, err := NormalizeArticle(raw)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.FindQuantityByArticle(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("find material quantity: %w", err)
	}
	if result == nil {
		logger.Debug(ctx, "material article not found", "article", article)
		return nil, apperror.NewNotFound("material", article)
	}

	return result, nil
}
