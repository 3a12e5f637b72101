package response

// APIError 对外错误：Message 返回给客户端，Cause 只进日志
type APIError struct {
	Status  int
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Body 客户端可见的错误体
func (e *APIError) Body() ErrorBody {
	return ErrorBody{Error: e.Message}
}

// NewAPIError 构造对外错误
func NewAPIError(status int, message string, cause error) *APIError {
	return &APIError{Status: status, Message: message, Cause: cause}
}
