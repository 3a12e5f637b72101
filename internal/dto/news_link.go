package dto

import (
	"time"

	"github.com/devlegal/internal/models"
)

const dateLayout = "2006-01-02"

// NewsLink 新闻线索响应，日期统一为 YYYY-MM-DD
type NewsLink struct {
	ID             uint    `json:"id"`
	URL            string  `json:"url"`
	DateOfArticle  *string `json:"date_of_article"`
	FocusOfArticle string  `json:"focus_of_article"`
	DateFetched    string  `json:"date_fetched"`
	ArticleWritten bool    `json:"article_written"`
}

// NewNewsLink 从模型构建新闻线索响应
func NewNewsLink(link *models.NewsLink) *NewsLink {
	if link == nil {
		return nil
	}
	out := &NewsLink{
		ID:             link.ID,
		URL:            link.URL,
		FocusOfArticle: link.FocusOfArticle,
		DateFetched:    formatDate(link.DateFetched),
		ArticleWritten: link.ArticleWritten,
	}
	if link.DateOfArticle != nil {
		value := formatDate(*link.DateOfArticle)
		out.DateOfArticle = &value
	}
	return out
}

// NewNewsLinks 批量构建新闻线索响应
func NewNewsLinks(links []models.NewsLink) []NewsLink {
	out := make([]NewsLink, 0, len(links))
	for i := range links {
		out = append(out, *NewNewsLink(&links[i]))
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
