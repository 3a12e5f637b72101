package service

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestPostServiceScenarioCategoryAndMarkdownPost(t *testing.T) {
	env := setupServiceTestEnv(t)

	category, err := env.category.Create(CategoryInput{Name: strPtr("Privacy Law")})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if category.Slug != "privacy-law" {
		t.Fatalf("unexpected category slug: %s", category.Slug)
	}

	post, err := env.posts.Create(PostInput{
		Title:       strPtr("GDPR Basics"),
		Content:     strPtr("# Intro\n**bold**\n\n<script>alert(1)</script>"),
		CategorySet: true,
		CategoryID:  uintPtr(category.ID),
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if post.Slug != "gdpr-basics" {
		t.Fatalf("unexpected post slug: %s", post.Slug)
	}
	if !strings.Contains(post.Content, "<h1") || !strings.Contains(post.Content, "<strong>bold</strong>") {
		t.Fatalf("expected markdown rendered html, got %q", post.Content)
	}
	if strings.Contains(strings.ToLower(post.Content), "<script") {
		t.Fatalf("script tag survived sanitization: %q", post.Content)
	}
	if post.Category == nil || post.Category.ID != category.ID {
		t.Fatalf("expected category to be preloaded, got %+v", post.Category)
	}
	if post.Published {
		t.Fatalf("posts must default to unpublished")
	}
	if !post.CommentsEnabled {
		t.Fatalf("comments must default to enabled")
	}
	if post.Excerpt == "" {
		t.Fatalf("expected excerpt to be derived from content")
	}
}

func TestPostServiceCreateValidation(t *testing.T) {
	env := setupServiceTestEnv(t)

	cases := []PostInput{
		{Title: strPtr("Only title")},
		{Content: strPtr("Only content")},
		{Title: strPtr("   "), Content: strPtr("body")},
	}
	for _, input := range cases {
		_, err := env.posts.Create(input)
		msg, ok := ValidationMessage(err)
		if !ok || msg != "Title and content are required" {
			t.Fatalf("expected validation error, got %v", err)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected errors.Is ErrValidation")
		}
	}
}

func TestPostServiceSlugSuffixOnCollision(t *testing.T) {
	env := setupServiceTestEnv(t)

	first := mustCreatePost(t, env.posts, "Data Retention", "<p>one</p>", true)
	second := mustCreatePost(t, env.posts, "Data Retention", "<p>two</p>", true)
	third := mustCreatePost(t, env.posts, "Data  Retention!", "<p>three</p>", true)

	if first.Slug != "data-retention" || second.Slug != "data-retention-2" || third.Slug != "data-retention-3" {
		t.Fatalf("unexpected slugs: %s %s %s", first.Slug, second.Slug, third.Slug)
	}
}

func TestPostServiceViewPublishedIncrementsViews(t *testing.T) {
	env := setupServiceTestEnv(t)
	post := mustCreatePost(t, env.posts, "Counting Views", "<p>body</p>", true)

	for i := 0; i < 2; i++ {
		if _, err := env.posts.ViewPublished(post.Slug); err != nil {
			t.Fatalf("view post failed: %v", err)
		}
	}

	stored, err := env.posts.GetByID(post.ID, false)
	if err != nil {
		t.Fatalf("get post failed: %v", err)
	}
	if stored.Views != post.Views+2 {
		t.Fatalf("expected views to grow by 2, got %d -> %d", post.Views, stored.Views)
	}
}

func TestPostServiceUnpublishedIsHidden(t *testing.T) {
	env := setupServiceTestEnv(t)
	draft := mustCreatePost(t, env.posts, "Draft Notes", "<p>secret</p>", false)
	mustCreatePost(t, env.posts, "Public Notes", "<p>hello</p>", true)

	if _, err := env.posts.ViewPublished(draft.Slug); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for draft, got %v", err)
	}
	if _, err := env.posts.GetByID(draft.ID, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for draft by id, got %v", err)
	}

	page, err := env.posts.ListPublished(PostListInput{})
	if err != nil {
		t.Fatalf("list published failed: %v", err)
	}
	if page.Total != 1 || len(page.Posts) != 1 || page.Posts[0].Slug != "public-notes" {
		t.Fatalf("unexpected published list: total=%d posts=%+v", page.Total, page.Posts)
	}
	if page.Page != 1 || page.Limit != 10 {
		t.Fatalf("unexpected pagination defaults: page=%d limit=%d", page.Page, page.Limit)
	}

	latest, err := env.posts.Latest()
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	for _, item := range latest {
		if !item.Published {
			t.Fatalf("latest returned unpublished post %s", item.Slug)
		}
	}
}

func TestPostServiceUpdateReplacesTagsAndSlug(t *testing.T) {
	env := setupServiceTestEnv(t)
	gdpr, err := env.tags.Create(TagInput{Name: strPtr("GDPR")})
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	ccpa, err := env.tags.Create(TagInput{Name: strPtr("CCPA")})
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}

	tags := []uint{gdpr.ID}
	post, err := env.posts.Create(PostInput{
		Title:   strPtr("Consent"),
		Content: strPtr("<p>body</p>"),
		TagIDs:  &tags,
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if len(post.Tags) != 1 || post.Tags[0].ID != gdpr.ID {
		t.Fatalf("unexpected initial tags: %+v", post.Tags)
	}

	replaced := []uint{ccpa.ID}
	updated, err := env.posts.Update(post.ID, PostInput{
		Title:     strPtr("Consent Management"),
		Published: boolPtr(true),
		TagIDs:    &replaced,
	})
	if err != nil {
		t.Fatalf("update post failed: %v", err)
	}
	if updated.Slug != "consent-management" {
		t.Fatalf("expected slug regenerated from title, got %s", updated.Slug)
	}
	if !updated.Published {
		t.Fatalf("expected published after update")
	}
	if len(updated.Tags) != 1 || updated.Tags[0].ID != ccpa.ID {
		t.Fatalf("expected tags replaced wholesale, got %+v", updated.Tags)
	}

	page, err := env.posts.List(PostListInput{TagSlug: "gdpr"})
	if err != nil {
		t.Fatalf("list by tag failed: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("expected no posts under removed tag, got %d", page.Total)
	}
	page, err = env.posts.List(PostListInput{TagSlug: "ccpa"})
	if err != nil {
		t.Fatalf("list by tag failed: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected one post under new tag, got %d", page.Total)
	}
}

func TestPostServiceUpdateWithoutTagsKeepsAssociation(t *testing.T) {
	env := setupServiceTestEnv(t)
	tag, err := env.tags.Create(TagInput{Name: strPtr("Contracts")})
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	tags := []uint{tag.ID}
	post, err := env.posts.Create(PostInput{Title: strPtr("NDA"), Content: strPtr("<p>x</p>"), TagIDs: &tags})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	updated, err := env.posts.Update(post.ID, PostInput{Excerpt: strPtr("short")})
	if err != nil {
		t.Fatalf("update post failed: %v", err)
	}
	if updated.Excerpt != "short" || len(updated.Tags) != 1 {
		t.Fatalf("unexpected post after partial update: excerpt=%q tags=%d", updated.Excerpt, len(updated.Tags))
	}
}

func TestPostServiceToggleAndDelete(t *testing.T) {
	env := setupServiceTestEnv(t)
	post := mustCreatePost(t, env.posts, "Toggle Me", "<p>x</p>", true)

	enabled, err := env.posts.ToggleComments(post.ID)
	if err != nil {
		t.Fatalf("toggle comments failed: %v", err)
	}
	if enabled {
		t.Fatalf("expected comments disabled after first toggle")
	}
	enabled, err = env.posts.ToggleComments(post.ID)
	if err != nil || !enabled {
		t.Fatalf("expected comments enabled after second toggle, got %v err=%v", enabled, err)
	}

	if err := env.posts.Delete(post.ID); err != nil {
		t.Fatalf("delete post failed: %v", err)
	}
	if err := env.posts.Delete(post.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := env.posts.ToggleComments(post.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound toggling deleted post, got %v", err)
	}
}

func TestPostServiceSearchAndUnknownCategory(t *testing.T) {
	env := setupServiceTestEnv(t)
	mustCreatePost(t, env.posts, "Cookie Banners", "<p>consent walls</p>", true)
	mustCreatePost(t, env.posts, "Licensing", "<p>open source</p>", true)

	page, err := env.posts.ListPublished(PostListInput{Search: "CONSENT"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.Total != 1 || page.Posts[0].Slug != "cookie-banners" {
		t.Fatalf("unexpected search result: %+v", page.Posts)
	}

	page, err = env.posts.List(PostListInput{CategorySlug: "missing"})
	if err != nil {
		t.Fatalf("list unknown category failed: %v", err)
	}
	if page.Total != 0 || len(page.Posts) != 0 {
		t.Fatalf("expected empty result for unknown category")
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-3, 5, 1, 5},
		{2, 500, 2, 100},
		{math.MaxInt, 100, maxPage, 100},
	}
	for _, tc := range cases {
		page, limit := NormalizePage(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Fatalf("NormalizePage(%d,%d)=(%d,%d) want (%d,%d)", tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}
