package shared

import (
	"errors"

	"github.com/devlegal/internal/http/response"
	"github.com/devlegal/internal/logger"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回 {"error": msg}，并在有原始错误时记录日志
func RespondError(c *gin.Context, code int, msg string, err error) {
	apiErr := response.NewAPIError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"status", apiErr.Status,
			"message", apiErr.Message,
			"path", c.Request.URL.Path,
			"error", apiErr,
		)
	}
	c.JSON(apiErr.Status, apiErr.Body())
}

type mappedError struct {
	target error
	code   int
	msg    string
}

// 业务哨兵错误到 HTTP 状态的映射；msg 为空时使用错误自身文本
var serviceErrorMappings = []mappedError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Not found"},
	{target: service.ErrSlugExists, code: response.CodeBadRequest, msg: "Slug already exists"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized},
	{target: service.ErrInvalidSession, code: response.CodeUnauthorized, msg: "Authentication required"},
	{target: service.ErrSessionRevoked, code: response.CodeUnauthorized, msg: "Authentication required"},
	{target: service.ErrCommentsDisabled, code: response.CodeBadRequest, msg: "Comments are disabled for this post"},
	{target: service.ErrFileRequired, code: response.CodeBadRequest},
	{target: service.ErrFileTooLarge, code: response.CodeBadRequest},
	{target: service.ErrFileTypeNotAllowed, code: response.CodeBadRequest},
	{target: service.ErrFileNotFound, code: response.CodeNotFound},
	{target: service.ErrInvalidFilename, code: response.CodeBadRequest},
	{target: service.ErrCaptchaDisabled, code: response.CodeNotFound, msg: "Captcha disabled"},
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest},
}

// RespondServiceError 将业务错误映射为 HTTP 响应；未知错误返回 500 与 fallback 文案
func RespondServiceError(c *gin.Context, err error, fallback string) {
	if msg, ok := service.ValidationMessage(err); ok {
		response.BadRequest(c, msg)
		return
	}
	for _, item := range serviceErrorMappings {
		if errors.Is(err, item.target) {
			msg := item.msg
			if msg == "" {
				msg = item.target.Error()
			}
			response.Error(c, item.code, msg)
			return
		}
	}
	RespondError(c, response.CodeInternal, fallback, err)
}
