package models

import "time"

// Comment 文章评论表
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`                         // 主键
	PostID    uint      `gorm:"not null;index" json:"post_id"`                // 文章ID
	Post      *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`      // 所属文章
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`       // 评论人
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`      // 邮箱
	Content   string    `gorm:"type:text;not null" json:"content"`            // 评论内容
	Approved  bool      `gorm:"not null;default:false;index" json:"approved"` // 是否审核通过
	CreatedAt time.Time `gorm:"index" json:"created_at"`                      // 创建时间
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
