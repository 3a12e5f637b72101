package models

import (
	"errors"
	"strings"

	"github.com/devlegal/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrAdminPasswordRequired 创建管理员时未提供密码
var ErrAdminPasswordRequired = errors.New("admin password is required")

// HasAdmin 是否已存在任一管理员
func HasAdmin(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureAdmin 确保存在指定的管理员账号
// 已存在同名账号时仅补齐管理员标识，不覆盖密码
func EnsureAdmin(db *gorm.DB, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		username = "admin"
	}

	var existing User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		if !existing.IsAdmin {
			if err := db.Model(&existing).Update("is_admin", true).Error; err != nil {
				return nil, err
			}
			existing.IsAdmin = true
			logger.Warnw("ensure_admin_flag_restored", "username", username)
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if password == "" {
		return nil, ErrAdminPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := User{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	logger.Warnw("admin_created", "username", username, "password_hidden", true)
	return &user, nil
}
