package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// optionalID 可选的外键 ID：区分未提供、显式置空与具体值
type optionalID struct {
	Set   bool
	Value *uint
}

// UnmarshalJSON 接受数字、数字字符串、空串与 null
func (o *optionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		return nil
	}
	raw = strings.Trim(raw, `"`)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", raw)
	}
	if id == 0 {
		return nil
	}
	value := uint(id)
	o.Value = &value
	return nil
}

// optionalString 可选字符串：null 视为显式清空
type optionalString struct {
	Set   bool
	Value string
}

// UnmarshalJSON 接受字符串与 null
func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr 转为服务层的可选输入
func (o optionalString) Ptr() *string {
	if !o.Set {
		return nil
	}
	value := o.Value
	return &value
}

// parseIDList 解析标签 ID 列表（数字或数字字符串）
func parseIDList(values *[]json.Number) (*[]uint, error) {
	if values == nil {
		return nil, nil
	}
	ids := make([]uint, 0, len(*values))
	for _, raw := range *values {
		id, err := strconv.ParseUint(strings.TrimSpace(raw.String()), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tag id %q", raw)
		}
		ids = append(ids, uint(id))
	}
	return &ids, nil
}

// parseNumberID 解析 json.Number 形式的 ID；空值返回 false
func parseNumberID(raw json.Number) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw.String()), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseQueryID(raw string) (uint, bool) {
	return parseNumberID(json.Number(raw))
}
