package content

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	wordsPerMinute    = 200
	defaultExcerptLen = 160
)

// RewriteImagePaths 将相对图片地址改写到上传目录下
// 绝对地址、根路径与 data URI 保持不变
func RewriteImagePaths(fragment, uploadsURLPath string) string {
	if !strings.Contains(fragment, "<img") {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	prefix := strings.TrimRight(uploadsURLPath, "/") + "/"
	changed := false
	doc.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || isAbsoluteRef(src) {
			return
		}
		img.SetAttr("src", prefix+strings.TrimPrefix(src, "./"))
		changed = true
	})
	if !changed {
		return fragment
	}
	out, err := doc.Find("body").Html()
	if err != nil {
		return fragment
	}
	return out
}

func isAbsoluteRef(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "/") ||
		strings.HasPrefix(lower, "data:")
}

// PlainText 提取 HTML 的纯文本，相邻元素之间以空格分隔
func PlainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	var b strings.Builder
	for _, n := range doc.Nodes {
		collectText(n, &b)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// Excerpt 从正文生成摘要
func Excerpt(fragment string, limit int) string {
	if limit <= 0 {
		limit = defaultExcerptLen
	}
	text := PlainText(fragment)
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:limit])
	if idx := strings.LastIndex(cut, " "); idx > limit/2 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// ReadingTime 估算阅读分钟数，至少 1 分钟
func ReadingTime(fragment string) int {
	words := len(strings.Fields(PlainText(fragment)))
	minutes := words / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
