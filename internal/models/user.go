package models

import "time"

// User 后台用户表
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                         // 主键
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`         // 登录账号
	PasswordHash string     `gorm:"not null" json:"-"`                            // 密码哈希（不返回给前端）
	IsAdmin      bool       `gorm:"not null;default:false;index" json:"is_admin"` // 是否管理员
	TokenVersion uint64     `gorm:"not null;default:0" json:"-"`                  // Token 版本（登出时递增，旧令牌全部失效）
	LastLoginAt  *time.Time `json:"last_login_at"`                                // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
