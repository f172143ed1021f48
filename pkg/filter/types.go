package filter

import (
	"fmt"

	"github.com/glesirok/uridispatch/pkg/pattern"
)

// Descriptor 描述一个过滤器：显示名称和参数模式
type Descriptor struct {
	Title   string `yaml:"title"`
	Pattern string `yaml:"pattern"`
}

// Registry 只读的过滤器注册表
type Registry interface {
	Lookup(token string) (Descriptor, bool)
}

// Table 是基于 map 的 Registry 实现，构造后不应再修改
type Table map[string]Descriptor

func (t Table) Lookup(token string) (Descriptor, bool) {
	d, ok := t[token]
	return d, ok
}

// Status 表示单个过滤器的解析结果
type Status string

const (
	StatusOK               Status = "ok"
	StatusMissingParams    Status = "missing_params"
	StatusUnknownFilter    Status = "unknown_filter"
	StatusInsufficientInfo Status = "insufficient_info"
	StatusMalformedPattern Status = "malformed_pattern"
	StatusCoercionFailed   Status = "coercion_failed"
)

// Result 是一个过滤器的解析结果
type Result struct {
	Status Status
	Token  string         // 路径中的过滤器名
	Filter string         // 注册表中的 title
	Params pattern.Params // 仅 StatusOK 时有值
	Err    error          // 仅 StatusMalformedPattern / StatusCoercionFailed 时有值
}

// OK 判断是否解析成功
func (r Result) OK() bool { return r.Status == StatusOK }

// Message 返回面向用户的描述
func (r Result) Message() string {
	switch r.Status {
	case StatusOK:
		return "Ok"
	case StatusMissingParams:
		return "Not enough info to " + r.Filter
	case StatusInsufficientInfo:
		return "Not enough info"
	case StatusUnknownFilter:
		return "Filter syntax error"
	case StatusMalformedPattern:
		return fmt.Sprintf("Malformed pattern for %s: %v", r.Filter, r.Err)
	case StatusCoercionFailed:
		return fmt.Sprintf("Invalid parameters for %s: %v", r.Filter, r.Err)
	default:
		return string(r.Status)
	}
}

// InsufficientInfo 只有过滤器名、后面完全没有参数位置时的结果
func InsufficientInfo(token string) Result {
	return Result{Status: StatusInsufficientInfo, Token: token}
}
