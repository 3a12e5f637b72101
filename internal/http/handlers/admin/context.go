package admin

import (
	"net/http"

	handlershared "github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/render"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	handlershared.RespondServiceError(c, err, fallback)
}

func currentIdentity(c *gin.Context) *service.Identity {
	return handlershared.CurrentIdentity(c)
}

func parseID(c *gin.Context) (uint, bool) {
	return handlershared.ParseID(c, "id")
}

func (h *Handler) renderPage(c *gin.Context, view render.View) {
	handlershared.RenderPage(c, h.Renderer, http.StatusOK, view)
}

func (h *Handler) renderServerError(c *gin.Context, event string, err error) {
	requestLog(c).Errorw(event, "path", c.Request.URL.Path, "error", err)
	handlershared.RenderError(c, h.Renderer, http.StatusInternalServerError)
}
