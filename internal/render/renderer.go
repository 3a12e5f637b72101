package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// ErrTemplateNotFound 模板文件不存在
var ErrTemplateNotFound = errors.New("template not found")

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)

// Renderer 模板渲染器：以 {{ key }} 占位符做字面替换，不支持条件与循环
type Renderer struct {
	root  string
	cache bool

	mu        sync.RWMutex
	templates map[string]string
}

// NewRenderer 创建渲染器；cache 为 true 时模板首次读取后常驻内存
func NewRenderer(root string, cache bool) *Renderer {
	return &Renderer{
		root:      root,
		cache:     cache,
		templates: make(map[string]string),
	}
}

// Render 渲染视图
func (r *Renderer) Render(view View) (string, error) {
	if view == nil {
		return "", errors.New("nil view")
	}
	return r.RenderTemplate(view.TemplateName(), view.Bindings())
}

// RenderTemplate 读取模板并替换绑定值；未绑定的占位符输出为空串
func (r *Renderer) RenderTemplate(name string, bindings Bindings) (string, error) {
	tpl, err := r.load(name)
	if err != nil {
		return "", err
	}
	return Substitute(tpl, bindings), nil
}

// Substitute 对模板文本执行占位符替换
func Substitute(tpl string, bindings Bindings) string {
	return placeholderPattern.ReplaceAllStringFunc(tpl, func(match string) string {
		sub := placeholderPattern.FindStringSubmatch(match)
		if len(sub) < 2 {
			return ""
		}
		if v, ok := bindings[sub[1]]; ok {
			return v.String()
		}
		return ""
	})
}

func (r *Renderer) load(name string) (string, error) {
	clean := filepath.Clean("/" + strings.TrimSpace(name))
	if r.cache {
		r.mu.RLock()
		tpl, ok := r.templates[clean]
		r.mu.RUnlock()
		if ok {
			return tpl, nil
		}
	}

	raw, err := os.ReadFile(filepath.Join(r.root, clean))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return "", fmt.Errorf("read template %s: %w", name, err)
	}
	tpl := string(raw)
	if r.cache {
		r.mu.Lock()
		r.templates[clean] = tpl
		r.mu.Unlock()
	}
	return tpl, nil
}
