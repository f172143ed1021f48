package filter

import (
	"github.com/glesirok/uridispatch/pkg/pattern"
)

// Resolve 解析单个过滤器及其参数字符串
// 所有失败都收敛在 Result 中，不影响同一路径上的其他过滤器
func Resolve(token, paramString string, reg Registry) Result {
	desc, ok := reg.Lookup(token)
	if !ok {
		return Result{Status: StatusUnknownFilter, Token: token}
	}

	res := Result{Token: token, Filter: desc.Title}

	// "{id}/{filter}//{filter}/..." 的情况
	if paramString == "" {
		res.Status = StatusMissingParams
		return res
	}

	p, err := pattern.Parse(desc.Pattern)
	if err != nil {
		res.Status = StatusMalformedPattern
		res.Err = err
		return res
	}

	params, err := p.Extract(paramString)
	if err != nil {
		res.Status = StatusCoercionFailed
		res.Err = err
		return res
	}

	res.Status = StatusOK
	res.Params = params
	return res
}
