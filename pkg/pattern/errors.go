package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPattern 模式本身有问题，属于注册表配置错误
	ErrMalformedPattern = errors.New("malformed pattern")
	// ErrTypeCoercion 参数值无法转换为声明的类型
	ErrTypeCoercion = errors.New("type coercion failed")
)

// CoercionError 描述某个变量的转换失败
type CoercionError struct {
	Name string
	Type Type
	Raw  string
	Err  error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("variable '%s': cannot convert %q to %s: %v", e.Name, e.Raw, e.Type, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

func (e *CoercionError) Is(target error) bool { return target == ErrTypeCoercion }

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedPattern, fmt.Sprintf(format, args...))
}
