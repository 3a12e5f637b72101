package service

import (
	"strings"

	"github.com/devlegal/internal/content"
	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name        *string
	Description *string
}

// List 获取分类列表
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.List()
}

// GetBySlug 根据 slug 获取分类
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := trimmed(input.Name)
	if name == "" {
		return nil, newValidationError("Name is required")
	}
	slug, err := taxonomySlug(name, nil, s.repo.CountBySlug)
	if err != nil {
		return nil, err
	}

	category := models.Category{
		Name:        name,
		Slug:        slug,
		Description: trimmed(input.Description),
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新分类；名称变化时重新生成 slug
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, newValidationError("Name is required")
		}
		if name != category.Name {
			slug, err := taxonomySlug(name, &id, s.repo.CountBySlug)
			if err != nil {
				return nil, err
			}
			category.Name = name
			category.Slug = slug
		}
	}
	if input.Description != nil {
		category.Description = strings.TrimSpace(*input.Description)
	}

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，关联文章的分类置空
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// taxonomySlug 分类/标签 slug 不追加序号，重复即报错
func taxonomySlug(name string, excludeID *uint, count func(string, *uint) (int64, error)) (string, error) {
	slug := content.Slugify(name)
	if slug == "" {
		return "", newValidationError("Name must contain letters or digits")
	}
	n, err := count(slug, excludeID)
	if err != nil {
		return "", err
	}
	if n > 0 {
		return "", ErrSlugExists
	}
	return slug, nil
}
