package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringArray 以 JSON 文本存储的字符串列表（商品、分类、邮箱名单等）
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	payload, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = StringArray{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported string array type: %T", value)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		*s = StringArray{}
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	*s = StringArray(items)
	return nil
}

// ContainsFold 判断是否包含某值（忽略大小写与首尾空白）
func (s StringArray) ContainsFold(value string) bool {
	target := strings.TrimSpace(value)
	if target == "" {
		return false
	}
	for _, item := range s {
		if strings.EqualFold(strings.TrimSpace(item), target) {
			return true
		}
	}
	return false
}

// Normalize 去除空白与重复项，lower 为 true 时统一小写
func (s StringArray) Normalize(lower bool) StringArray {
	result := make(StringArray, 0, len(s))
	seen := make(map[string]struct{}, len(s))
	for _, item := range s {
		trimmed := strings.TrimSpace(item)
		if lower {
			trimmed = strings.ToLower(trimmed)
		}
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
