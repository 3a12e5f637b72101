package service

import (
	"fmt"
	"strings"

	"github.com/devlegal/internal/content"
	"github.com/devlegal/internal/logger"
	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/repository"
)

const (
	// UploadsURLPath 上传文件的公开访问前缀
	UploadsURLPath = "/uploads"

	defaultPageSize = 10
	maxPageSize     = 100
	maxPage         = 100000 // 页码上限，保证 OFFSET 不溢出
	homePostLimit   = 3
	fallbackSlug    = "post"
)

// PostService 文章业务服务
type PostService struct {
	repo         repository.PostRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
}

// NewPostService 创建文章服务
func NewPostService(repo repository.PostRepository, categoryRepo repository.CategoryRepository, tagRepo repository.TagRepository) *PostService {
	return &PostService{repo: repo, categoryRepo: categoryRepo, tagRepo: tagRepo}
}

// PostInput 创建/更新文章输入；指针为 nil 表示未提供
type PostInput struct {
	Title           *string
	Content         *string
	Excerpt         *string
	FeaturedImage   *string
	Published       *bool
	CommentsEnabled *bool
	CategorySet     bool
	CategoryID      *uint
	TagIDs          *[]uint
}

// PostListInput 文章列表查询条件
type PostListInput struct {
	Page         int
	Limit        int
	Published    *bool
	CategorySlug string
	TagSlug      string
	Search       string
}

// PostPage 分页结果
type PostPage struct {
	Posts []models.Post
	Total int64
	Page  int
	Limit int
}

// NormalizePage 归一化页码与每页数量
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// List 查询文章列表；分类/标签 slug 不存在时返回空列表
func (s *PostService) List(input PostListInput) (*PostPage, error) {
	page, limit := NormalizePage(input.Page, input.Limit)
	result := &PostPage{Posts: []models.Post{}, Page: page, Limit: limit}

	filter := repository.PostListFilter{
		Page:      page,
		PageSize:  limit,
		Published: input.Published,
		Search:    strings.TrimSpace(input.Search),
	}
	if slug := strings.TrimSpace(input.CategorySlug); slug != "" {
		category, err := s.categoryRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return result, nil
		}
		filter.CategoryID = &category.ID
	}
	if slug := strings.TrimSpace(input.TagSlug); slug != "" {
		tag, err := s.tagRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if tag == nil {
			return result, nil
		}
		filter.TagID = &tag.ID
	}

	posts, total, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	result.Posts = posts
	result.Total = total
	return result, nil
}

// ListPublished 公开文章列表（强制仅已发布）
func (s *PostService) ListPublished(input PostListInput) (*PostPage, error) {
	published := true
	input.Published = &published
	return s.List(input)
}

// Latest 首页最新文章
func (s *PostService) Latest() ([]models.Post, error) {
	page, err := s.ListPublished(PostListInput{Page: 1, Limit: homePostLimit})
	if err != nil {
		return nil, err
	}
	return page.Posts, nil
}

// GetByID 获取文章详情；onlyPublished 时未发布视为不存在
func (s *PostService) GetByID(id uint, onlyPublished bool) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil || (onlyPublished && !post.Published) {
		return nil, ErrNotFound
	}
	return post, nil
}

// ViewPublished 读取已发布文章并递增浏览次数
func (s *PostService) ViewPublished(slug string) (*models.Post, error) {
	post, err := s.repo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if err := s.repo.IncrementViews(post.ID); err != nil {
		logger.Warnw("post_view_increment_failed", "post_id", post.ID, "error", err)
		return post, nil
	}
	post.Views++
	return post, nil
}

// Create 创建文章
func (s *PostService) Create(input PostInput) (*models.Post, error) {
	title := trimmed(input.Title)
	body := trimmed(input.Content)
	if title == "" || body == "" {
		return nil, newValidationError("Title and content are required")
	}

	slug, err := s.uniqueSlug(content.Slugify(title), nil)
	if err != nil {
		return nil, err
	}

	processed := content.Process(body, UploadsURLPath)
	post := models.Post{
		Title:           title,
		Slug:            slug,
		Content:         processed,
		Excerpt:         resolveExcerpt(input.Excerpt, processed),
		FeaturedImage:   trimmed(input.FeaturedImage),
		Published:       boolOr(input.Published, false),
		CommentsEnabled: boolOr(input.CommentsEnabled, true),
	}
	if input.CategorySet {
		post.CategoryID = normalizeOptionalID(input.CategoryID)
	}

	var tagIDs []uint
	if input.TagIDs != nil {
		tagIDs = *input.TagIDs
	}
	if err := s.repo.Create(&post, tagIDs); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.GetByID(post.ID, false)
}

// Update 局部更新文章；标题变化时重新生成 slug
func (s *PostService) Update(id uint, input PostInput) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	fields := map[string]interface{}{}
	if title := trimmed(input.Title); title != "" && title != post.Title {
		slug, err := s.uniqueSlug(content.Slugify(title), &id)
		if err != nil {
			return nil, err
		}
		fields["title"] = title
		fields["slug"] = slug
	}
	if body := trimmed(input.Content); body != "" {
		processed := content.Process(body, UploadsURLPath)
		fields["content"] = processed
		if input.Excerpt == nil && strings.TrimSpace(post.Excerpt) == "" {
			fields["excerpt"] = content.Excerpt(processed, 0)
		}
	}
	if input.Excerpt != nil {
		fields["excerpt"] = strings.TrimSpace(*input.Excerpt)
	}
	if input.FeaturedImage != nil {
		fields["featured_image"] = strings.TrimSpace(*input.FeaturedImage)
	}
	if input.Published != nil {
		fields["published"] = *input.Published
	}
	if input.CommentsEnabled != nil {
		fields["comments_enabled"] = *input.CommentsEnabled
	}
	if input.CategorySet {
		if categoryID := normalizeOptionalID(input.CategoryID); categoryID != nil {
			fields["category_id"] = *categoryID
		} else {
			fields["category_id"] = nil
		}
	}

	if err := s.repo.Update(id, fields, input.TagIDs); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return s.GetByID(id, false)
}

// Delete 删除文章
func (s *PostService) Delete(id uint) error {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// ToggleComments 切换文章评论开关，返回切换后的状态
func (s *PostService) ToggleComments(id uint) (bool, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, ErrNotFound
	}
	enabled := !post.CommentsEnabled
	if err := s.repo.Update(id, map[string]interface{}{"comments_enabled": enabled}, nil); err != nil {
		return false, fmt.Errorf("toggle comments: %w", err)
	}
	return enabled, nil
}

// uniqueSlug 冲突时依次追加 -2、-3 ...
func (s *PostService) uniqueSlug(base string, excludeID *uint) (string, error) {
	if base == "" {
		base = fallbackSlug
	}
	candidate := base
	for i := 2; ; i++ {
		count, err := s.repo.CountBySlug(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func resolveExcerpt(excerpt *string, processed string) string {
	if value := trimmed(excerpt); value != "" {
		return value
	}
	return content.Excerpt(processed, 0)
}

func normalizeOptionalID(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	value := *id
	return &value
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
