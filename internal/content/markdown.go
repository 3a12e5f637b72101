package content

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdownRenderer = goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify),
	)
	sanitizePolicy = newSanitizePolicy()
)

func newSanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("div", "span", "hr", "br")
	p.AllowAttrs("class").OnElements("img", "a", "div", "span", "code", "pre", "table")
	p.AllowAttrs("id").OnElements("div", "span")
	p.AllowAttrs("target", "rel").OnElements("a")
	p.AllowAttrs("border").OnElements("table")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	p.AllowRelativeURLs(true)
	return p
}

// LooksLikeMarkdown 判断正文是否按 Markdown 处理：以标题标记开头或包含加粗标记
func LooksLikeMarkdown(body string) bool {
	trimmed := strings.TrimSpace(body)
	return strings.HasPrefix(trimmed, "#") || strings.Contains(trimmed, "**")
}

// MarkdownToHTML 渲染 Markdown；渲染失败时按纯文本段落输出
func MarkdownToHTML(body string) string {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(body), &buf); err != nil {
		return "<p>" + body + "</p>"
	}
	return buf.String()
}

// Sanitize 按允许列表净化 HTML
func Sanitize(html string) string {
	return sanitizePolicy.Sanitize(html)
}

// Process 处理文章正文：Markdown/HTML 判定、净化、相对图片路径改写
// 两个分支都必须经过净化
func Process(body, uploadsURLPath string) string {
	html := body
	if LooksLikeMarkdown(body) {
		html = MarkdownToHTML(body)
	}
	clean := Sanitize(html)
	return RewriteImagePaths(clean, uploadsURLPath)
}
