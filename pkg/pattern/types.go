package pattern

import (
	"fmt"
	"strings"
)

// Type 表示占位符声明的值类型
type Type int

const (
	TypeInteger Type = iota // {x|integer}
	TypeFloat               // {x|float}
	TypeString              // {x|string}
	TypeBoolean             // {x|boolean}
)

// typeNames 类型标签，包括常见别名
var typeNames = map[string]Type{
	"integer": TypeInteger,
	"int":     TypeInteger,
	"float":   TypeFloat,
	"double":  TypeFloat,
	"string":  TypeString,
	"boolean": TypeBoolean,
	"bool":    TypeBoolean,
}

// ParseType 解析类型标签
func ParseType(tag string) (Type, error) {
	t, ok := typeNames[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return 0, fmt.Errorf("unknown type %q", tag)
	}
	return t, nil
}

func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Placeholder 表示模式中的一个 {name|type} 块
type Placeholder struct {
	Name string
	Type Type
}

// Pattern 表示解析后的参数模式
// Delimiters[i] 是 Placeholders[i] 之后的分隔符，最后一个占位符没有分隔符
type Pattern struct {
	Source       string
	Placeholders []Placeholder
	Delimiters   []string
}

// Names 按声明顺序返回变量名
func (p *Pattern) Names() []string {
	names := make([]string, len(p.Placeholders))
	for i, ph := range p.Placeholders {
		names[i] = ph.Name
	}
	return names
}
