package service

import (
	"net/url"
	"strings"
	"time"

	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/repository"
)

const articleDateLayout = "2006-01-02"

// NewsLinkService 新闻线索服务
type NewsLinkService struct {
	repo repository.NewsLinkRepository
	now  func() time.Time
}

// NewNewsLinkService 创建新闻线索服务
func NewNewsLinkService(repo repository.NewsLinkRepository) *NewsLinkService {
	return &NewsLinkService{repo: repo, now: time.Now}
}

// NewsLinkInput 创建/更新新闻线索输入；指针为 nil 表示未提供
type NewsLinkInput struct {
	URL            *string
	DateOfArticle  *string
	FocusOfArticle *string
	ArticleWritten *bool
}

// List 新闻线索列表（按收录日期倒序）
func (s *NewsLinkService) List() ([]models.NewsLink, error) {
	return s.repo.List()
}

// Create 创建新闻线索
func (s *NewsLinkService) Create(input NewsLinkInput) (*models.NewsLink, error) {
	rawURL := trimmed(input.URL)
	if rawURL == "" {
		return nil, newValidationError("URL is required")
	}
	if err := validateArticleURL(rawURL); err != nil {
		return nil, err
	}
	articleDate, err := parseArticleDate(input.DateOfArticle)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	link := models.NewsLink{
		URL:            rawURL,
		DateOfArticle:  articleDate,
		FocusOfArticle: trimmed(input.FocusOfArticle),
		DateFetched:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		ArticleWritten: false,
	}
	if err := s.repo.Create(&link); err != nil {
		return nil, err
	}
	return &link, nil
}

// Update 局部更新新闻线索
func (s *NewsLinkService) Update(id uint, input NewsLinkInput) (*models.NewsLink, error) {
	link, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrNotFound
	}

	fields := map[string]interface{}{}
	if input.URL != nil {
		rawURL := strings.TrimSpace(*input.URL)
		if rawURL == "" {
			return nil, newValidationError("URL is required")
		}
		if err := validateArticleURL(rawURL); err != nil {
			return nil, err
		}
		fields["url"] = rawURL
	}
	if input.DateOfArticle != nil {
		articleDate, err := parseArticleDate(input.DateOfArticle)
		if err != nil {
			return nil, err
		}
		if articleDate == nil {
			fields["date_of_article"] = nil
		} else {
			fields["date_of_article"] = *articleDate
		}
	}
	if input.FocusOfArticle != nil {
		fields["focus_of_article"] = strings.TrimSpace(*input.FocusOfArticle)
	}
	if input.ArticleWritten != nil {
		fields["article_written"] = *input.ArticleWritten
	}

	if len(fields) > 0 {
		if err := s.repo.Update(id, fields); err != nil {
			return nil, err
		}
	}
	updated, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// Delete 删除新闻线索
func (s *NewsLinkService) Delete(id uint) error {
	link, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if link == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func validateArticleURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return newValidationError("URL must be an absolute http(s) address")
	}
	return nil
}

// parseArticleDate 空字符串视为清空
func parseArticleDate(raw *string) (*time.Time, error) {
	value := trimmed(raw)
	if value == "" {
		return nil, nil
	}
	if len(value) > len(articleDateLayout) {
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return &day, nil
		}
	}
	parsed, err := time.Parse(articleDateLayout, value)
	if err != nil {
		return nil, newValidationError("date_of_article must be YYYY-MM-DD")
	}
	return &parsed, nil
}
