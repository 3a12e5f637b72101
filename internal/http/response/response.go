package response

import "github.com/gin-gonic/gin"

// ErrorBody 统一错误响应结构
type ErrorBody struct {
	Error string `json:"error"`
}

// OK 200 响应
func OK(c *gin.Context, payload interface{}) {
	c.JSON(CodeOK, payload)
}

// Created 201 响应
func Created(c *gin.Context, payload interface{}) {
	c.JSON(CodeCreated, payload)
}

// Success 通用成功响应 {"success": true}
func Success(c *gin.Context) {
	c.JSON(CodeOK, gin.H{"success": true})
}

// SuccessWithMsg 成功响应（自定义消息与附加字段）
func SuccessWithMsg(c *gin.Context, msg string, extra gin.H) {
	body := gin.H{"success": true, "message": msg}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(CodeOK, body)
}

// Error 错误响应 {"error": msg}
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, ErrorBody{Error: msg})
}

// Abort 中止后续处理并输出错误响应
func Abort(c *gin.Context, statusCode int, msg string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Error: msg})
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}
