package public

import (
	"net/http"

	handlershared "github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/render"

	"github.com/gin-gonic/gin"
)

func isAdmin(c *gin.Context) bool {
	return handlershared.IsAdmin(c)
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	handlershared.RespondServiceError(c, err, fallback)
}

func (h *Handler) renderPage(c *gin.Context, status int, view render.View) {
	handlershared.RenderPage(c, h.Renderer, status, view)
}

func (h *Handler) renderNotFound(c *gin.Context) {
	handlershared.RenderError(c, h.Renderer, http.StatusNotFound)
}

func (h *Handler) renderServerError(c *gin.Context, event string, err error) {
	handlershared.RequestLog(c).Errorw(event, "path", c.Request.URL.Path, "error", err)
	handlershared.RenderError(c, h.Renderer, http.StatusInternalServerError)
}
