package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrSlugExists         = errors.New("slug already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidSession     = errors.New("invalid session token")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrCommentsDisabled   = errors.New("comments are disabled for this post")
	ErrFileRequired       = errors.New("No file uploaded")
	ErrFileTooLarge       = errors.New("File too large")
	ErrFileTypeNotAllowed = errors.New("File type not allowed")
	ErrFileNotFound       = errors.New("File not found")
	ErrInvalidFilename    = errors.New("Invalid filename")
	ErrCaptchaDisabled    = errors.New("captcha disabled")
	ErrCaptchaRequired    = errors.New("Captcha is required")
	ErrCaptchaInvalid     = errors.New("Invalid captcha")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError 表单校验错误，Message 可直接返回给客户端
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is 让 errors.Is(err, ErrValidation) 命中所有校验错误
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}

// ValidationMessage 提取校验错误消息
func ValidationMessage(err error) (string, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message, true
	}
	return "", false
}
