package models

import "time"

// Post 博客文章表
type Post struct {
	ID              uint      `gorm:"primarykey" json:"id"`                               // 主键
	Title           string    `gorm:"type:varchar(255);not null" json:"title"`            // 标题
	Slug            string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"` // 唯一标识（由标题生成）
	Content         string    `gorm:"type:text" json:"content"`                           // 已净化的 HTML 正文
	Excerpt         string    `gorm:"type:text" json:"excerpt"`                           // 摘要
	FeaturedImage   string    `gorm:"type:varchar(500)" json:"featured_image"`            // 封面图
	Published       bool      `gorm:"not null;default:false;index" json:"published"`      // 是否发布
	CommentsEnabled bool      `gorm:"not null;default:true" json:"comments_enabled"`      // 是否开放评论
	Views           int64     `gorm:"not null;default:0" json:"views"`                    // 浏览次数
	CategoryID      *uint     `gorm:"index" json:"category_id"`                           // 分类ID
	Category        *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`    // 分类
	Tags            []Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`          // 标签
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}

// PostTag 文章与标签关联表
type PostTag struct {
	PostID uint `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`
}

// TableName 指定表名
func (PostTag) TableName() string {
	return "post_tags"
}
