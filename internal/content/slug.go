package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugReplacer = strings.NewReplacer(
	"&", " and ",
	"@", " at ",
	"%", " percent ",
	"+", " plus ",
	"ß", "ss",
	"æ", "ae",
	"Æ", "ae",
	"ø", "o",
	"Ø", "o",
	"đ", "d",
	"Đ", "d",
	"ł", "l",
	"Ł", "l",
)

// Slugify 将名称转换为小写 ASCII 短横线标识
// 仅保留 [a-z0-9]，其余字符折叠为单个 "-"；对同一输入结果恒定且幂等
func Slugify(name string) string {
	folded := foldDiacritics(slugReplacer.Replace(name))

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r), r == '-', r == '_', r == '/', r == '.':
			pendingDash = true
		default:
			// strict 模式：丢弃其他符号，不产生分隔
		}
	}
	return b.String()
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
