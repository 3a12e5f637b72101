package admin

import (
	"fmt"
	"html"
	"strings"

	handlershared "github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/render"
	"github.com/devlegal/internal/repository"
	"github.com/devlegal/internal/service"
)

const (
	templateLogin      = "admin/login.html"
	templateDashboard  = "admin/index.html"
	templatePosts      = "admin/posts.html"
	templateCategories = "admin/categories.html"
	templateTags       = "admin/tags.html"
	templateComments   = "admin/comments.html"
	templateNewsLinks  = "admin/news_links/index.html"
	templateDocuments  = "admin/documents/index.html"

	newsLinkDateLayout = "2006-01-02"
)

// DashboardView 后台首页
type DashboardView struct {
	handlershared.Layout
	Stats repository.DashboardStats
}

func (v DashboardView) TemplateName() string { return templateDashboard }

func (v DashboardView) Bindings() render.Bindings {
	return v.Bind(render.Bindings{
		"total_posts":      render.Int(v.Stats.Posts),
		"published_posts":  render.Int(v.Stats.PublishedPosts),
		"draft_posts":      render.Int(v.Stats.Posts - v.Stats.PublishedPosts),
		"pending_comments": render.Int(v.Stats.PendingComments),
		"news_links":       render.Int(v.Stats.NewsLinks),
		"subscribers":      render.Int(v.Stats.Subscribers),
	})
}

// PostsView 文章管理页
type PostsView struct {
	handlershared.Layout
	Page       *service.PostPage
	Categories []models.Category
	Tags       []models.Tag
}

func (v PostsView) TemplateName() string { return templatePosts }

func (v PostsView) Bindings() render.Bindings {
	var rows strings.Builder
	pagination := ""
	if v.Page != nil {
		for i := range v.Page.Posts {
			rows.WriteString(postRow(&v.Page.Posts[i]))
		}
		pagination = handlershared.Pagination("/admin/posts", v.Page.Page, v.Page.Limit, v.Page.Total)
	}
	if rows.Len() == 0 {
		rows.WriteString(emptyRow(6, "No posts yet."))
	}
	return v.Bind(render.Bindings{
		"post_rows":        render.HTML(rows.String()),
		"pagination":       render.HTML(pagination),
		"category_options": render.HTML(categoryOptions(v.Categories)),
		"tag_options":      render.HTML(tagOptions(v.Tags)),
	})
}

// CategoriesView 分类管理页
type CategoriesView struct {
	handlershared.Layout
	Categories []models.Category
}

func (v CategoriesView) TemplateName() string { return templateCategories }

func (v CategoriesView) Bindings() render.Bindings {
	var rows strings.Builder
	for _, category := range v.Categories {
		rows.WriteString(fmt.Sprintf(
			`<tr data-id="%d"><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			category.ID,
			html.EscapeString(category.Name),
			html.EscapeString(category.Slug),
			html.EscapeString(category.Description),
			rowActions("categories", category.ID),
		))
	}
	if rows.Len() == 0 {
		rows.WriteString(emptyRow(4, "No categories yet."))
	}
	return v.Bind(render.Bindings{"category_rows": render.HTML(rows.String())})
}

// TagsView 标签管理页
type TagsView struct {
	handlershared.Layout
	Tags []models.Tag
}

func (v TagsView) TemplateName() string { return templateTags }

func (v TagsView) Bindings() render.Bindings {
	var rows strings.Builder
	for _, tag := range v.Tags {
		rows.WriteString(fmt.Sprintf(
			`<tr data-id="%d"><td>%s</td><td>%s</td><td>%s</td></tr>`,
			tag.ID,
			html.EscapeString(tag.Name),
			html.EscapeString(tag.Slug),
			rowActions("tags", tag.ID),
		))
	}
	if rows.Len() == 0 {
		rows.WriteString(emptyRow(3, "No tags yet."))
	}
	return v.Bind(render.Bindings{"tag_rows": render.HTML(rows.String())})
}

// CommentsView 评论审核页
type CommentsView struct {
	handlershared.Layout
	Comments []models.Comment
}

func (v CommentsView) TemplateName() string { return templateComments }

func (v CommentsView) Bindings() render.Bindings {
	var rows strings.Builder
	for i := range v.Comments {
		rows.WriteString(commentRow(&v.Comments[i]))
	}
	if rows.Len() == 0 {
		rows.WriteString(emptyRow(6, "No comments yet."))
	}
	return v.Bind(render.Bindings{"comment_rows": render.HTML(rows.String())})
}

// NewsLinksView 新闻线索管理页
type NewsLinksView struct {
	handlershared.Layout
	Links []models.NewsLink
}

func (v NewsLinksView) TemplateName() string { return templateNewsLinks }

func (v NewsLinksView) Bindings() render.Bindings {
	var rows strings.Builder
	for i := range v.Links {
		rows.WriteString(newsLinkRow(&v.Links[i]))
	}
	if rows.Len() == 0 {
		rows.WriteString(emptyRow(5, "No news links yet."))
	}
	return v.Bind(render.Bindings{"news_link_rows": render.HTML(rows.String())})
}

// DocumentsView 文档管理页
type DocumentsView struct {
	handlershared.Layout
	Files    []service.DocumentFile
	MaxBytes int64
}

func (v DocumentsView) TemplateName() string { return templateDocuments }

func (v DocumentsView) Bindings() render.Bindings {
	var rows strings.Builder
	for _, file := range v.Files {
		rows.WriteString(fmt.Sprintf(
			`<tr data-name="%[1]s"><td><a href="%[2]s" target="_blank" rel="noopener">%[1]s</a></td><td>%[3]s</td><td>%[4]s</td>`+
				`<td><button type="button" class="btn btn-danger" data-action="delete-document" data-name="%[1]s">Delete</button></td></tr>`,
			html.EscapeString(file.Name),
			html.EscapeString(file.URL),
			formatSize(file.Size),
			handlershared.FormatDate(file.Modified),
		))
	}
	if rows.Len() == 0 {
		rows.WriteString(emptyRow(4, "No documents uploaded yet."))
	}
	return v.Bind(render.Bindings{
		"document_rows": render.HTML(rows.String()),
		"max_size":      render.Text(formatSize(v.MaxBytes)),
	})
}

func postRow(post *models.Post) string {
	status := `<span class="badge badge-draft">Draft</span>`
	if post.Published {
		status = `<span class="badge badge-published">Published</span>`
	}
	category := ""
	if post.Category != nil {
		category = html.EscapeString(post.Category.Name)
	}
	toggleLabel := "Enable comments"
	if post.CommentsEnabled {
		toggleLabel = "Disable comments"
	}
	return fmt.Sprintf(
		`<tr data-id="%d"><td><a href="/blog/post/%s">%s</a></td><td>%s</td><td>%s</td><td>%d</td><td>%s</td>`+
			`<td>%s <button type="button" class="btn" data-action="toggle-comments" data-id="%d">%s</button></td></tr>`,
		post.ID,
		html.EscapeString(post.Slug),
		html.EscapeString(post.Title),
		category,
		status,
		post.Views,
		handlershared.FormatDate(post.CreatedAt),
		rowActions("posts", post.ID),
		post.ID,
		toggleLabel,
	)
}

func commentRow(comment *models.Comment) string {
	postTitle := ""
	if comment.Post != nil {
		postTitle = html.EscapeString(comment.Post.Title)
	}
	action, label := "approve-comment", "Approve"
	if comment.Approved {
		action, label = "unapprove-comment", "Unapprove"
	}
	return fmt.Sprintf(
		`<tr data-id="%d"><td>%s<br><small>%s</small></td><td>%s</td><td>%s</td><td>%s</td><td>%s</td>`+
			`<td><button type="button" class="btn" data-action="%s" data-id="%d">%s</button> `+
			`<button type="button" class="btn btn-danger" data-action="delete" data-resource="comments" data-id="%d">Delete</button></td></tr>`,
		comment.ID,
		html.EscapeString(comment.Name),
		html.EscapeString(comment.Email),
		html.EscapeString(comment.Content),
		postTitle,
		approvalBadge(comment.Approved),
		handlershared.FormatDate(comment.CreatedAt),
		action,
		comment.ID,
		label,
		comment.ID,
	)
}

func newsLinkRow(link *models.NewsLink) string {
	articleDate := ""
	if link.DateOfArticle != nil {
		articleDate = link.DateOfArticle.Format(newsLinkDateLayout)
	}
	written := ""
	if link.ArticleWritten {
		written = " checked"
	}
	return fmt.Sprintf(
		`<tr data-id="%d"><td><a href="%s" target="_blank" rel="noopener">%s</a></td><td>%s</td><td>%s</td><td>%s</td>`+
			`<td><input type="checkbox" data-action="toggle-written" data-id="%d"%s> %s</td></tr>`,
		link.ID,
		html.EscapeString(link.URL),
		html.EscapeString(link.URL),
		articleDate,
		html.EscapeString(link.FocusOfArticle),
		link.DateFetched.Format(newsLinkDateLayout),
		link.ID,
		written,
		rowActions("news-links", link.ID),
	)
}

func approvalBadge(approved bool) string {
	if approved {
		return `<span class="badge badge-published">Approved</span>`
	}
	return `<span class="badge badge-draft">Pending</span>`
}

func rowActions(resource string, id uint) string {
	return fmt.Sprintf(
		`<button type="button" class="btn" data-action="edit" data-resource="%[1]s" data-id="%[2]d">Edit</button> `+
			`<button type="button" class="btn btn-danger" data-action="delete" data-resource="%[1]s" data-id="%[2]d">Delete</button>`,
		resource, id,
	)
}

func categoryOptions(categories []models.Category) string {
	var out strings.Builder
	out.WriteString(`<option value="">No category</option>`)
	for _, category := range categories {
		out.WriteString(fmt.Sprintf(`<option value="%d">%s</option>`, category.ID, html.EscapeString(category.Name)))
	}
	return out.String()
}

func tagOptions(tags []models.Tag) string {
	var out strings.Builder
	for _, tag := range tags {
		out.WriteString(fmt.Sprintf(
			`<label class="tag-option"><input type="checkbox" name="tags" value="%d"> %s</label>`,
			tag.ID, html.EscapeString(tag.Name),
		))
	}
	return out.String()
}

func emptyRow(columns int, message string) string {
	return fmt.Sprintf(`<tr class="empty"><td colspan="%d">%s</td></tr>`, columns, html.EscapeString(message))
}

// formatSize 文件大小展示
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGT"[exp])
}
