package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// keywordMatch 多列模糊匹配，返回 WHERE 片段与参数；keyword 为空时 ok=false
func keywordMatch(db *gorm.DB, keyword string, columns ...string) (clause string, args []interface{}, ok bool) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", nil, false
	}
	pattern := "%" + likeEscaper.Replace(keyword) + "%"
	template := matchTemplate(dialectOf(db))

	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf(template, column))
		args = append(args, pattern)
	}
	if len(parts) == 0 {
		return "", nil, false
	}
	return "(" + strings.Join(parts, " OR ") + ")", args, true
}

func dialectOf(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return ""
	}
	return strings.ToLower(db.Dialector.Name())
}

// matchTemplate sqlite 的 LIKE 只对 ASCII 忽略大小写
func matchTemplate(dialect string) string {
	if dialect == "postgres" {
		return `%s ILIKE ? ESCAPE '\'`
	}
	return `LOWER(%s) LIKE LOWER(?) ESCAPE '\'`
}
