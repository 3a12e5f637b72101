package repository

import (
	"math"

	"gorm.io/gorm"
)

// pageWindow 由页码与每页数量换算出的 LIMIT/OFFSET
type pageWindow struct {
	limit  int
	offset int
}

// newPageWindow pageSize <= 0 表示不分页
func newPageWindow(page, pageSize int) (pageWindow, bool) {
	if pageSize <= 0 {
		return pageWindow{}, false
	}
	if page < 1 {
		page = 1
	}
	// 超出可表示范围时钳制到最后一个合法页
	if page-1 > math.MaxInt/pageSize {
		page = math.MaxInt/pageSize + 1
	}
	return pageWindow{limit: pageSize, offset: (page - 1) * pageSize}, true
}

// applyPagination 按页截取查询结果
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	window, ok := newPageWindow(page, pageSize)
	if query == nil || !ok {
		return query
	}
	return query.Limit(window.limit).Offset(window.offset)
}
