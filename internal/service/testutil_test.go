package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db       *gorm.DB
	posts    *PostService
	category *CategoryService
	tags     *TagService
	comments *CommentService
	links    *NewsLinkService
}

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func setupServiceTestEnv(t *testing.T) *serviceTestEnv {
	t.Helper()
	db := setupServiceTestDB(t)
	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	return &serviceTestEnv{
		db:       db,
		posts:    NewPostService(postRepo, categoryRepo, tagRepo),
		category: NewCategoryService(categoryRepo),
		tags:     NewTagService(tagRepo),
		comments: NewCommentService(repository.NewCommentRepository(db), postRepo),
		links:    NewNewsLinkService(repository.NewNewsLinkRepository(db)),
	}
}

func strPtr(v string) *string {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func uintPtr(v uint) *uint {
	return &v
}

func mustCreatePost(t *testing.T, svc *PostService, title, body string, published bool) *models.Post {
	t.Helper()
	post, err := svc.Create(PostInput{
		Title:     strPtr(title),
		Content:   strPtr(body),
		Published: boolPtr(published),
	})
	if err != nil {
		t.Fatalf("create post %q failed: %v", title, err)
	}
	return post
}
