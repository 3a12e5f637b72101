package main

import (
	"errors"
	"flag"

	"github.com/devlegal/internal/app"
	"github.com/devlegal/internal/config"
	"github.com/devlegal/internal/content"
	"github.com/devlegal/internal/logger"
	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/repository"
	"github.com/devlegal/internal/service"

	"gorm.io/gorm"
)

type samplePost struct {
	Title    string
	Content  string
	Category string
	Tags     []string
}

var sampleCategories = []service.CategoryInput{
	{Name: strPtr("Business Law"), Description: strPtr("Contracts, formation and compliance for small businesses.")},
	{Name: strPtr("Family Law"), Description: strPtr("Divorce, custody and estate planning.")},
	{Name: strPtr("Legal Tech"), Description: strPtr("Tools and practices for modern legal work.")},
}

var sampleTags = []string{"contracts", "startups", "estate planning", "privacy"}

var samplePosts = []samplePost{
	{
		Title:    "Five Clauses Every Service Contract Needs",
		Category: "business-law",
		Tags:     []string{"contracts", "startups"},
		Content: "# Five Clauses Every Service Contract Needs\n\n" +
			"A well drafted agreement saves money later. Start with **scope of work**, " +
			"then payment terms, termination, liability caps and dispute resolution.\n\n" +
			"![Signing](contract-signing.jpg)",
	},
	{
		Title:    "Planning Your Estate Before It Is Urgent",
		Category: "family-law",
		Tags:     []string{"estate planning"},
		Content: "<p>Most people postpone estate planning. A simple will and a durable power of " +
			"attorney cover the essentials for many families.</p>",
	},
	{
		Title:    "What Privacy Rules Mean for Your Website",
		Category: "legal-tech",
		Tags:     []string{"privacy"},
		Content: "<p>If your site collects email addresses you already process personal data. " +
			"Publish a privacy notice and keep a record of consent.</p>",
	},
}

func main() {
	var (
		configPath    string
		adminOnly     bool
		resetPassword bool
	)
	flag.StringVar(&configPath, "config", "", "配置文件路径")
	flag.BoolVar(&adminOnly, "admin-only", false, "仅创建/更新管理员账号")
	flag.BoolVar(&resetPassword, "reset-password", false, "将管理员密码重置为配置中的值")
	flag.Parse()

	cfg := config.LoadFile(configPath)
	logger.Init(cfg.Log.ToLoggerOptions(cfg.Server.IsProduction()))
	stdLog := logger.StdLogger()

	db, demoMode, err := app.OpenStore(cfg)
	if err != nil {
		stdLog.Fatalf("Failed to open store: %v", err)
	}
	if demoMode {
		stdLog.Fatalf("No store configured; set DATABASE_URL or SUPABASE_URL before seeding")
	}

	if resetPassword {
		if err := resetAdminPassword(db, cfg.Admin); err != nil {
			stdLog.Fatalf("Failed to reset admin password: %v", err)
		}
		stdLog.Printf("Admin password reset: %s", cfg.Admin.Username)
	}
	if adminOnly {
		return
	}

	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	categories := service.NewCategoryService(categoryRepo)
	tags := service.NewTagService(tagRepo)
	posts := service.NewPostService(postRepo, categoryRepo, tagRepo)
	links := service.NewNewsLinkService(repository.NewNewsLinkRepository(db))

	// 分类
	categoryIDs := map[string]uint{}
	for _, input := range sampleCategories {
		category, err := categories.Create(input)
		if errors.Is(err, service.ErrSlugExists) {
			existing, lookupErr := categoryRepo.GetBySlug(slugOf(*input.Name))
			if lookupErr != nil || existing == nil {
				stdLog.Printf("Failed to load category %s: %v", *input.Name, lookupErr)
				continue
			}
			stdLog.Printf("Category already exists: %s", existing.Slug)
			categoryIDs[existing.Slug] = existing.ID
			continue
		}
		if err != nil {
			stdLog.Printf("Failed to create category %s: %v", *input.Name, err)
			continue
		}
		stdLog.Printf("Created category: %s", category.Slug)
		categoryIDs[category.Slug] = category.ID
	}

	// 标签
	tagIDs := map[string]uint{}
	for _, name := range sampleTags {
		tagName := name
		tag, err := tags.Create(service.TagInput{Name: &tagName})
		if errors.Is(err, service.ErrSlugExists) {
			existing, lookupErr := tagRepo.GetBySlug(slugOf(name))
			if lookupErr != nil || existing == nil {
				stdLog.Printf("Failed to load tag %s: %v", name, lookupErr)
				continue
			}
			stdLog.Printf("Tag already exists: %s", existing.Slug)
			tagIDs[name] = existing.ID
			continue
		}
		if err != nil {
			stdLog.Printf("Failed to create tag %s: %v", name, err)
			continue
		}
		stdLog.Printf("Created tag: %s", tag.Slug)
		tagIDs[name] = tag.ID
	}

	// 文章（按标题 slug 去重）
	for _, sample := range samplePosts {
		existing, err := postRepo.GetBySlug(slugOf(sample.Title), false)
		if err != nil {
			stdLog.Printf("Failed to check post %s: %v", sample.Title, err)
			continue
		}
		if existing != nil {
			stdLog.Printf("Post already exists: %s", existing.Slug)
			continue
		}
		input := service.PostInput{
			Title:       strPtr(sample.Title),
			Content:     strPtr(sample.Content),
			Published:   boolPtr(true),
			CategorySet: true,
		}
		if id, ok := categoryIDs[sample.Category]; ok {
			input.CategoryID = &id
		}
		ids := make([]uint, 0, len(sample.Tags))
		for _, name := range sample.Tags {
			if id, ok := tagIDs[name]; ok {
				ids = append(ids, id)
			}
		}
		input.TagIDs = &ids
		post, err := posts.Create(input)
		if err != nil {
			stdLog.Printf("Failed to create post %s: %v", sample.Title, err)
			continue
		}
		stdLog.Printf("Created post: %s", post.Slug)
	}

	// 新闻线索
	existingLinks, err := links.List()
	if err != nil {
		stdLog.Printf("Failed to load news links: %v", err)
	} else if len(existingLinks) == 0 {
		if _, err := links.Create(service.NewsLinkInput{
			URL:            strPtr("https://example.com/news/new-small-business-rules"),
			DateOfArticle:  strPtr("2025-01-15"),
			FocusOfArticle: strPtr("Reporting changes for small companies"),
		}); err != nil {
			stdLog.Printf("Failed to create news link: %v", err)
		} else {
			stdLog.Printf("Created sample news link")
		}
	}

	stdLog.Printf("Seed completed")
}

// resetAdminPassword 账号不存在时按配置新建管理员
func resetAdminPassword(db *gorm.DB, admin config.AdminConfig) error {
	users := repository.NewUserRepository(db)
	user, err := users.GetByUsername(admin.Username)
	if err != nil {
		return err
	}
	if admin.Password == "" {
		return models.ErrAdminPasswordRequired
	}
	if user == nil {
		_, err := models.EnsureAdmin(db, admin.Username, admin.Password)
		return err
	}
	hash, err := service.HashPassword(admin.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.IsAdmin = true
	return users.Update(user)
}

func slugOf(value string) string {
	return content.Slugify(value)
}

func strPtr(v string) *string {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
