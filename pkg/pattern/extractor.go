package pattern

import (
	"iter"
	"strings"
)

// Segments 按分隔符依次切分参数字符串，共产生 len(delimiters)+1 个片段
// 某个分隔符找不到时，该片段取剩余全部内容，之后的片段都是空串
func Segments(paramString string, delimiters []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := paramString
		for _, delim := range delimiters {
			value, after, found := strings.Cut(rest, delim)
			if !found {
				// 剩余部分全部归当前变量
				value, after = rest, ""
			}
			if !yield(value) {
				return
			}
			rest = after
		}
		yield(rest)
	}
}

// Extract 按模式从参数字符串中提取带类型的变量
func (p *Pattern) Extract(paramString string) (Params, error) {
	if len(p.Placeholders) == 0 || len(p.Delimiters) != len(p.Placeholders)-1 {
		return nil, malformed("%d placeholders with %d delimiters", len(p.Placeholders), len(p.Delimiters))
	}

	params := make(Params, 0, len(p.Placeholders))

	i := 0
	for raw := range Segments(paramString, p.Delimiters) {
		ph := p.Placeholders[i]
		i++

		v, err := Coerce(ph.Type, raw)
		if err != nil {
			return nil, &CoercionError{Name: ph.Name, Type: ph.Type, Raw: raw, Err: err}
		}
		params = append(params, Param{Name: ph.Name, Value: v})
	}

	return params, nil
}

// Format 是 Extract 的逆操作，用分隔符拼接参数值
func (p *Pattern) Format(params Params) string {
	var b strings.Builder
	for i, ph := range p.Placeholders {
		if v, ok := params.Get(ph.Name); ok {
			b.WriteString(v.String())
		}
		if i < len(p.Delimiters) {
			b.WriteString(p.Delimiters[i])
		}
	}
	return b.String()
}
