package models

import "time"

// Category 文章分类表
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`             // 名称
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"` // 唯一标识
	Description string    `gorm:"type:text" json:"description"`                       // 描述
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                            // 创建时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// Tag 文章标签表
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`             // 名称
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"` // 唯一标识
	CreatedAt time.Time `gorm:"index" json:"created_at"`                            // 创建时间
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}
