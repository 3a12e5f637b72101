package render

import (
	"html"
	"strconv"
)

// Value 模板可绑定的标量值
// 只能通过 Text/HTML/Int/Bool 构造，列表或对象无法被绑定
type Value struct {
	s string
}

// String 返回替换进模板的文本
func (v Value) String() string {
	return v.s
}

// Text 用户可控文本，替换前做 HTML 转义
func Text(s string) Value {
	return Value{s: html.EscapeString(s)}
}

// HTML 已净化的受信 HTML 片段
func HTML(s string) Value {
	return Value{s: s}
}

// Int 整数值
func Int(n int64) Value {
	return Value{s: strconv.FormatInt(n, 10)}
}

// Bool 布尔值
func Bool(b bool) Value {
	return Value{s: strconv.FormatBool(b)}
}

// Bindings 模板占位符到标量值的映射
type Bindings map[string]Value

// View 页面视图：声明模板名与绑定集合
type View interface {
	TemplateName() string
	Bindings() Bindings
}
