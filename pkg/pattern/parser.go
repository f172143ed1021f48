package pattern

import (
	"strings"
)

// Parse 解析参数模式
// 支持语法：
//   - {width|integer}x{height|integer}
//   - {x|float},{y|float}
//   - {name|string}
//
// 第一个占位符之前和最后一个占位符之后的文本会被忽略
func Parse(pattern string) (*Pattern, error) {
	if pattern == "" {
		return nil, malformed("empty pattern")
	}

	blocks := splitBlocks(pattern)

	// 丢弃首尾边界文本
	if len(blocks) < 2 {
		return nil, malformed("no placeholder in %q", pattern)
	}
	blocks = blocks[1 : len(blocks)-1]

	if len(blocks) == 0 {
		return nil, malformed("no placeholder in %q", pattern)
	}

	// 占位符和分隔符交替出现，数量必须是奇数
	if len(blocks)%2 == 0 {
		return nil, malformed("placeholders and delimiters do not alternate in %q", pattern)
	}

	p := &Pattern{Source: pattern}
	seen := make(map[string]bool)

	for i, block := range blocks {
		if i%2 == 1 {
			p.Delimiters = append(p.Delimiters, block)
			continue
		}

		ph, err := parsePlaceholder(block)
		if err != nil {
			return nil, err
		}
		if seen[ph.Name] {
			return nil, malformed("duplicate variable '%s' in %q", ph.Name, pattern)
		}
		seen[ph.Name] = true
		p.Placeholders = append(p.Placeholders, ph)
	}

	return p, nil
}

// MustParse 用于静态模式，解析失败直接 panic
func MustParse(pattern string) *Pattern {
	p, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// splitBlocks 按 { 和 } 切分，连续的括号视为一个分隔点，保留首尾空片段
// 例如: "{x|integer}-{y|integer}" -> ["", "x|integer", "-", "y|integer", ""]
func splitBlocks(pattern string) []string {
	var parts []string
	var current strings.Builder
	prevBrace := false

	for _, ch := range pattern {
		switch ch {
		case '{', '}':
			if !prevBrace {
				parts = append(parts, current.String())
				current.Reset()
			}
			prevBrace = true
		default:
			current.WriteRune(ch)
			prevBrace = false
		}
	}

	parts = append(parts, current.String())
	return parts
}

// parsePlaceholder 解析 name|type 块
func parsePlaceholder(block string) (Placeholder, error) {
	parts := strings.Split(block, "|")
	if len(parts) != 2 {
		return Placeholder{}, malformed("placeholder '%s' must be name|type", block)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Placeholder{}, malformed("placeholder '%s' has empty name", block)
	}

	t, err := ParseType(parts[1])
	if err != nil {
		return Placeholder{}, malformed("placeholder '%s': %v", block, err)
	}

	return Placeholder{Name: name, Type: t}, nil
}
