package shared

import (
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

const identityContextKey = "identity"

// SetIdentity 将身份挂到请求上下文
func SetIdentity(c *gin.Context, identity *service.Identity) {
	if identity == nil {
		return
	}
	c.Set(identityContextKey, identity)
}

// CurrentIdentity 当前请求的身份；匿名返回 nil
func CurrentIdentity(c *gin.Context) *service.Identity {
	value, ok := c.Get(identityContextKey)
	if !ok {
		return nil
	}
	identity, ok := value.(*service.Identity)
	if !ok {
		return nil
	}
	return identity
}

// IsAdmin 当前请求是否为管理员
func IsAdmin(c *gin.Context) bool {
	identity := CurrentIdentity(c)
	return identity != nil && identity.IsAdmin
}
