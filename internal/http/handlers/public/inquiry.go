package public

import (
	handlershared "github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/http/response"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactRequest 联系表单请求（JSON 或表单）
type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
	handlershared.CaptchaPayloadRequest
}

// SubscribeRequest 订阅请求（JSON 或表单）
type SubscribeRequest struct {
	Email     string `json:"email" form:"email"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Role      string `json:"role" form:"role"`
}

// SubmitContact 保存联系留言
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "All fields are required")
		return
	}
	if err := req.Verify(h.CaptchaService); err != nil {
		respondServiceError(c, err, "Failed to submit message")
		return
	}
	if _, err := h.InquiryService.Contact(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}); err != nil {
		respondServiceError(c, err, "Failed to submit message")
		return
	}
	response.SuccessWithMsg(c, "Your message has been received. We will get back to you soon.", nil)
}

// Subscribe 订阅通讯
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Email is required")
		return
	}
	if _, err := h.InquiryService.Subscribe(service.SubscribeInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}); err != nil {
		respondServiceError(c, err, "Failed to subscribe")
		return
	}
	response.SuccessWithMsg(c, "Thank you for subscribing to our newsletter!", nil)
}
