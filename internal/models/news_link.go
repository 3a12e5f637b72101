package models

import "time"

// NewsLink 新闻线索表（后台收集的外部文章链接）
type NewsLink struct {
	ID             uint       `gorm:"primarykey" json:"id"`                              // 主键
	URL            string     `gorm:"column:url;type:varchar(2048);not null" json:"url"` // 文章链接
	DateOfArticle  *time.Time `json:"date_of_article"`                                   // 原文日期
	FocusOfArticle string     `gorm:"type:text" json:"focus_of_article"`                 // 关注点
	DateFetched    time.Time  `gorm:"index" json:"date_fetched"`                         // 收录日期
	ArticleWritten bool       `gorm:"not null;default:false" json:"article_written"`     // 是否已撰文
	CreatedAt      time.Time  `json:"created_at"`                                        // 创建时间
	UpdatedAt      time.Time  `json:"updated_at"`                                        // 更新时间
}

// TableName 指定表名
func (NewsLink) TableName() string {
	return "news_links"
}
