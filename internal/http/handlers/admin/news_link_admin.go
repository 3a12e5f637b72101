package admin

import (
	"errors"

	"github.com/devlegal/internal/dto"
	"github.com/devlegal/internal/http/response"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

// NewsLinkRequest 新闻线索请求；date_of_article 为 null 或空串时清空
type NewsLinkRequest struct {
	URL            *string        `json:"url"`
	DateOfArticle  optionalString `json:"date_of_article"`
	FocusOfArticle *string        `json:"focus_of_article"`
	ArticleWritten *bool          `json:"article_written"`
}

func (r NewsLinkRequest) toInput() service.NewsLinkInput {
	return service.NewsLinkInput{
		URL:            r.URL,
		DateOfArticle:  r.DateOfArticle.Ptr(),
		FocusOfArticle: r.FocusOfArticle,
		ArticleWritten: r.ArticleWritten,
	}
}

// ListNewsLinks 新闻线索列表
func (h *Handler) ListNewsLinks(c *gin.Context) {
	links, err := h.NewsLinkService.List()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch news links")
		return
	}
	response.OK(c, gin.H{"newsLinks": dto.NewNewsLinks(links)})
}

// CreateNewsLink 新增新闻线索
func (h *Handler) CreateNewsLink(c *gin.Context) {
	var req NewsLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	link, err := h.NewsLinkService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to create news link")
		return
	}
	requestLog(c).Infow("admin_news_link_created", "news_link_id", link.ID)
	response.Created(c, gin.H{"newsLink": dto.NewNewsLink(link)})
}

// UpdateNewsLink 更新新闻线索
func (h *Handler) UpdateNewsLink(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, "News link not found")
		return
	}
	var req NewsLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	link, err := h.NewsLinkService.Update(id, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "News link not found")
			return
		}
		respondServiceError(c, err, "Failed to update news link")
		return
	}
	response.OK(c, gin.H{"newsLink": dto.NewNewsLink(link)})
}

// DeleteNewsLink 删除新闻线索
func (h *Handler) DeleteNewsLink(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, "News link not found")
		return
	}
	if err := h.NewsLinkService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "News link not found")
			return
		}
		respondServiceError(c, err, "Failed to delete news link")
		return
	}
	requestLog(c).Infow("admin_news_link_deleted", "news_link_id", id)
	response.Success(c)
}
