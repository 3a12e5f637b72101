package public

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/devlegal/internal/content"
	handlershared "github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/render"
	"github.com/devlegal/internal/service"
)

const (
	templateHome         = "index.html"
	templateAbout        = "about.html"
	templateServices     = "services.html"
	templateContact      = "contact.html"
	templateBlogIndex    = "blog/index.html"
	templateBlogPost     = "blog/post.html"
	templateBlogCategory = "blog/category.html"
	templateBlogTag      = "blog/tag.html"
	templateBlogSearch   = "blog/search.html"
)

// HomeView 首页
type HomeView struct {
	handlershared.Layout
	Posts []models.Post
}

func (v HomeView) TemplateName() string { return templateHome }

func (v HomeView) Bindings() render.Bindings {
	return v.Bind(render.Bindings{
		"latest_posts": render.HTML(postCards(v.Posts, "No articles published yet.")),
	})
}

// ContactView 联系页
type ContactView struct {
	handlershared.Layout
	CaptchaEnabled bool
}

func (v ContactView) TemplateName() string { return templateContact }

func (v ContactView) Bindings() render.Bindings {
	return v.Bind(render.Bindings{
		"captcha_enabled": render.Bool(v.CaptchaEnabled),
		"captcha_field":   render.HTML(captchaField(v.CaptchaEnabled)),
	})
}

// PostListView 博客列表类页面（首页列表/分类/标签/搜索）
type PostListView struct {
	handlershared.Layout
	Template    string
	Heading     string
	Description string
	Query       string
	BasePath    string
	Page        *service.PostPage
	Categories  []models.Category
}

func (v PostListView) TemplateName() string { return v.Template }

func (v PostListView) Bindings() render.Bindings {
	var (
		posts []models.Post
		total int64
		page  = 1
		limit = 10
	)
	if v.Page != nil {
		posts, total, page, limit = v.Page.Posts, v.Page.Total, v.Page.Page, v.Page.Limit
	}
	empty := "No articles found."
	if v.Template == templateBlogSearch && strings.TrimSpace(v.Query) == "" {
		empty = "Enter a search term to find articles."
	}
	return v.Bind(render.Bindings{
		"heading":      render.Text(v.Heading),
		"description":  render.Text(v.Description),
		"query":        render.Text(v.Query),
		"posts":        render.HTML(postCards(posts, empty)),
		"result_count": render.Int(total),
		"current_page": render.Int(int64(page)),
		"pagination":   render.HTML(handlershared.Pagination(v.BasePath, page, limit, total)),
		"categories":   render.HTML(categoryLinks(v.Categories)),
	})
}

// PostView 文章详情页
type PostView struct {
	handlershared.Layout
	Post           *models.Post
	Comments       []models.Comment
	CommentStatus  string
	CaptchaEnabled bool
}

func (v PostView) TemplateName() string { return templateBlogPost }

func (v PostView) Bindings() render.Bindings {
	post := v.Post
	return v.Bind(render.Bindings{
		"post_title":     render.Text(post.Title),
		"post_slug":      render.Text(post.Slug),
		"post_excerpt":   render.Text(post.Excerpt),
		"post_content":   render.HTML(post.Content),
		"post_date":      render.Text(handlershared.FormatDate(post.CreatedAt)),
		"post_views":     render.Int(post.Views),
		"reading_time":   render.Int(int64(content.ReadingTime(post.Content))),
		"featured_image": render.HTML(featuredImage(post)),
		"category":       render.HTML(categoryLink(post.Category)),
		"tags":           render.HTML(tagLinks(post.Tags)),
		"comment_count":  render.Int(int64(len(v.Comments))),
		"comments":       render.HTML(commentList(v.Comments, post.CommentsEnabled)),
		"comment_notice": render.HTML(commentNotice(v.CommentStatus)),
		"comment_form":   render.HTML(commentForm(post, v.CaptchaEnabled)),
	})
}

func postURL(slug string) string {
	return "/blog/post/" + url.PathEscape(slug)
}

func postCards(posts []models.Post, empty string) string {
	if len(posts) == 0 {
		return fmt.Sprintf(`<p class="empty">%s</p>`, html.EscapeString(empty))
	}
	var b strings.Builder
	for i := range posts {
		post := &posts[i]
		b.WriteString(`<article class="post-card">`)
		b.WriteString(featuredImage(post))
		fmt.Fprintf(&b, `<h2><a href="%s">%s</a></h2>`, html.EscapeString(postURL(post.Slug)), html.EscapeString(post.Title))
		fmt.Fprintf(&b, `<p class="meta"><time>%s</time>`, html.EscapeString(handlershared.FormatDate(post.CreatedAt)))
		if link := categoryLink(post.Category); link != "" {
			b.WriteString(" &middot; " + link)
		}
		fmt.Fprintf(&b, ` &middot; %d views</p>`, post.Views)
		fmt.Fprintf(&b, `<p class="excerpt">%s</p>`, html.EscapeString(post.Excerpt))
		fmt.Fprintf(&b, `<a class="read-more" href="%s">Read more</a>`, html.EscapeString(postURL(post.Slug)))
		b.WriteString(`</article>`)
	}
	return b.String()
}

func featuredImage(post *models.Post) string {
	if post == nil || strings.TrimSpace(post.FeaturedImage) == "" {
		return ""
	}
	return fmt.Sprintf(`<img class="featured-image" src="%s" alt="%s">`,
		html.EscapeString(post.FeaturedImage), html.EscapeString(post.Title))
}

func categoryLink(category *models.Category) string {
	if category == nil {
		return ""
	}
	return fmt.Sprintf(`<a class="category" href="/blog/category/%s">%s</a>`,
		html.EscapeString(url.PathEscape(category.Slug)), html.EscapeString(category.Name))
}

func categoryLinks(categories []models.Category) string {
	if len(categories) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<ul class="category-list">`)
	for i := range categories {
		fmt.Fprintf(&b, `<li>%s</li>`, categoryLink(&categories[i]))
	}
	b.WriteString(`</ul>`)
	return b.String()
}

func tagLinks(tags []models.Tag) string {
	if len(tags) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<ul class="tag-list">`)
	for _, tag := range tags {
		fmt.Fprintf(&b, `<li><a class="tag" href="/blog/tag/%s">%s</a></li>`,
			html.EscapeString(url.PathEscape(tag.Slug)), html.EscapeString(tag.Name))
	}
	b.WriteString(`</ul>`)
	return b.String()
}

func commentList(comments []models.Comment, enabled bool) string {
	if !enabled {
		return `<p class="comments-closed">Comments are closed for this post.</p>`
	}
	if len(comments) == 0 {
		return `<p class="empty">No comments yet.</p>`
	}
	var b strings.Builder
	b.WriteString(`<ol class="comment-list">`)
	for _, comment := range comments {
		fmt.Fprintf(&b, `<li class="comment"><p class="comment-meta"><strong>%s</strong> <time>%s</time></p><p>%s</p></li>`,
			html.EscapeString(comment.Name),
			html.EscapeString(handlershared.FormatDate(comment.CreatedAt)),
			strings.ReplaceAll(html.EscapeString(comment.Content), "\n", "<br>"),
		)
	}
	b.WriteString(`</ol>`)
	return b.String()
}

func commentNotice(status string) string {
	msg, ok := commentNotices[status]
	if !ok {
		return ""
	}
	class := "notice-success"
	if status != commentStatusPending {
		class = "notice-error"
	}
	return fmt.Sprintf(`<div class="notice %s">%s</div>`, class, html.EscapeString(msg))
}

func commentForm(post *models.Post, captchaEnabled bool) string {
	if post == nil || !post.CommentsEnabled {
		return ""
	}
	return fmt.Sprintf(`<form class="comment-form" method="post" action="%s/comment">`+
		`<label>Name <input type="text" name="name" maxlength="100" required></label>`+
		`<label>Email <input type="email" name="email" required></label>`+
		`<label>Comment <textarea name="content" rows="5" maxlength="5000" required></textarea></label>`+
		`%s<button type="submit">Submit comment</button></form>`,
		html.EscapeString(postURL(post.Slug)), captchaField(captchaEnabled))
}

func captchaField(enabled bool) string {
	if !enabled {
		return ""
	}
	return `<div class="captcha" data-captcha-endpoint="/api/captcha">` +
		`<input type="hidden" name="captcha_id"><img class="captcha-image" alt="captcha">` +
		`<label>Code <input type="text" name="captcha_code" autocomplete="off" required></label></div>`
}
