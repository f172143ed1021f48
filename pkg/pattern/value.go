package pattern

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// Value 是带类型的参数值，只能通过 Coerce 构造
type Value struct {
	typ Type
	i   int64
	f   float64
	b   bool
	s   string
}

// Coerce 按类型标签转换原始字符串，失败时返回错误而不是零值
func Coerce(t Type, raw string) (Value, error) {
	switch t {
	case TypeInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, unwrapNumError(err)
		}
		return Value{typ: t, i: n}, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, unwrapNumError(err)
		}
		return Value{typ: t, f: f}, nil
	case TypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, unwrapNumError(err)
		}
		return Value{typ: t, b: b}, nil
	case TypeString:
		return Value{typ: t, s: raw}, nil
	default:
		return Value{}, strconv.ErrSyntax
	}
}

func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

// Int 构造整数值
func Int(n int64) Value { return Value{typ: TypeInteger, i: n} }

// Float 构造浮点值
func Float(f float64) Value { return Value{typ: TypeFloat, f: f} }

// Bool 构造布尔值
func Bool(b bool) Value { return Value{typ: TypeBoolean, b: b} }

// Str 构造字符串值
func Str(s string) Value { return Value{typ: TypeString, s: s} }

func (v Value) Type() Type { return v.typ }

func (v Value) Int() int64 { return v.i }

func (v Value) Float() float64 { return v.f }

func (v Value) Bool() bool { return v.b }

func (v Value) Str() string { return v.s }

// Interface 返回对应的 Go 原生值
func (v Value) Interface() any {
	switch v.typ {
	case TypeInteger:
		return v.i
	case TypeFloat:
		return v.f
	case TypeBoolean:
		return v.b
	default:
		return v.s
	}
}

// String 返回可以被 Coerce 还原的文本形式
func (v Value) String() string {
	switch v.typ {
	case TypeInteger:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeBoolean:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

func (v Value) MarshalYAML() (interface{}, error) {
	return v.Interface(), nil
}

// Param 是一个变量名和值
type Param struct {
	Name  string
	Value Value
}

// Params 按模式声明顺序保存参数
type Params []Param

// Get 按变量名查找
func (ps Params) Get(name string) (Value, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Map 转换为普通 map（丢失顺序）
func (ps Params) Map() map[string]any {
	m := make(map[string]any, len(ps))
	for _, p := range ps {
		m[p.Name] = p.Value.Interface()
	}
	return m
}

// MarshalYAML 输出保持顺序的 mapping
func (ps Params) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range ps {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Name}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(p.Value.Interface()); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}
