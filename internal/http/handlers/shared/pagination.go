package shared

import (
	"strconv"
	"strings"

	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

// ParsePagination 从查询参数读取并归一化 page/limit
func ParsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit")))
	return service.NormalizePage(page, limit)
}

// ParseID 解析路径中的数字 ID
func ParseID(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ParseOptionalBool 解析可选布尔查询参数；缺省返回 nil
func ParseOptionalBool(c *gin.Context, name string) *bool {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	value := strings.EqualFold(raw, "true") || raw == "1"
	return &value
}
