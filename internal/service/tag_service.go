package service

import (
	"strings"

	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/repository"
)

// TagService 标签业务服务
type TagService struct {
	repo repository.TagRepository
}

// NewTagService 创建标签服务
func NewTagService(repo repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

// TagInput 创建/更新标签输入
type TagInput struct {
	Name *string
}

// List 获取标签列表
func (s *TagService) List() ([]models.Tag, error) {
	return s.repo.List()
}

// GetBySlug 根据 slug 获取标签
func (s *TagService) GetBySlug(slug string) (*models.Tag, error) {
	tag, err := s.repo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	return tag, nil
}

// Create 创建标签
func (s *TagService) Create(input TagInput) (*models.Tag, error) {
	name := trimmed(input.Name)
	if name == "" {
		return nil, newValidationError("Name is required")
	}
	slug, err := taxonomySlug(name, nil, s.repo.CountBySlug)
	if err != nil {
		return nil, err
	}

	tag := models.Tag{Name: name, Slug: slug}
	if err := s.repo.Create(&tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update 更新标签
func (s *TagService) Update(id uint, input TagInput) (*models.Tag, error) {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	if input.Name == nil {
		return tag, nil
	}

	name := strings.TrimSpace(*input.Name)
	if name == "" {
		return nil, newValidationError("Name is required")
	}
	if name == tag.Name {
		return tag, nil
	}
	slug, err := taxonomySlug(name, &id, s.repo.CountBySlug)
	if err != nil {
		return nil, err
	}
	tag.Name = name
	tag.Slug = slug
	if err := s.repo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete 删除标签及其文章关联
func (s *TagService) Delete(id uint) error {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
