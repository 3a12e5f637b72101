package service

import (
	"net/mail"
	"strings"

	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/repository"
)

// InquiryService 联系表单与订阅服务
type InquiryService struct {
	repo repository.InquiryRepository
}

// NewInquiryService 创建联系表单服务
func NewInquiryService(repo repository.InquiryRepository) *InquiryService {
	return &InquiryService{repo: repo}
}

// ContactInput 联系表单输入
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// SubscribeInput 订阅输入
type SubscribeInput struct {
	Email     string
	FirstName string
	LastName  string
	Role      string
}

// Contact 保存联系留言
func (s *InquiryService) Contact(input ContactInput) (*models.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return nil, newValidationError("All fields are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, newValidationError("Invalid email address")
	}

	record := models.ContactMessage{Name: name, Email: email, Message: message}
	if err := s.repo.CreateContact(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Subscribe 订阅通讯；同一邮箱重复订阅只更新资料
func (s *InquiryService) Subscribe(input SubscribeInput) (*models.Subscriber, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, newValidationError("Email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, newValidationError("Invalid email address")
	}

	subscriber := models.Subscriber{
		Email:     email,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Role:      strings.TrimSpace(input.Role),
	}
	if err := s.repo.UpsertSubscriber(&subscriber); err != nil {
		return nil, err
	}
	return &subscriber, nil
}
