package dispatch

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/glesirok/uridispatch/pkg/filter"
)

// Result 是一次路径分发的结果
type Result struct {
	Path       string          // 解码后的路径
	ResourceID string          // 路径第一段
	NoFilters  bool            // 路径中没有请求任何过滤器
	Filters    []filter.Result // 每对 (filter, params) 一个结果，按出现顺序
	Ignored    string          // 奇数个 token 时被忽略的最后一个
}

// Dispatcher 把请求路径分解为资源 ID 和过滤器调用
type Dispatcher struct {
	registry filter.Registry
	logger   *slog.Logger
}

// Option 配置 Dispatcher
type Option func(*Dispatcher)

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func New(reg filter.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch 使用给定注册表分发一个路径
func Dispatch(rawURI string, reg filter.Registry) (*Result, error) {
	return split(rawURI, reg)
}

// Dispatch 分发路径并记录注册表问题
func (d *Dispatcher) Dispatch(rawURI string) (*Result, error) {
	res, err := split(rawURI, d.registry)
	if err != nil {
		d.logger.Debug("dispatch failed", "uri", rawURI, "error", err)
		return nil, err
	}

	for _, f := range res.Filters {
		switch f.Status {
		case filter.StatusMalformedPattern:
			// 注册表缺陷，不是调用方输入的问题
			d.logger.Error("malformed filter pattern", "filter", f.Token, "title", f.Filter, "error", f.Err)
		case filter.StatusOK:
		default:
			d.logger.Debug("filter not applied", "uri", rawURI, "filter", f.Token, "status", string(f.Status))
		}
	}

	if res.Ignored != "" {
		d.logger.Debug("trailing token ignored", "uri", rawURI, "token", res.Ignored)
	}

	return res, nil
}

func split(rawURI string, reg filter.Registry) (*Result, error) {
	path, err := url.PathUnescape(rawURI)
	if err != nil {
		return nil, fmt.Errorf("decode path: %w", err)
	}

	// 去掉开头的 '/'，保证第一段就是资源 ID
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")

	res := &Result{
		Path:       path,
		ResourceID: parts[0],
	}
	tokens := parts[1:]

	switch len(tokens) {
	case 0:
		res.NoFilters = true
		return res, nil
	case 1:
		// "{id}/{filter}" 只有过滤器名
		res.Filters = []filter.Result{filter.InsufficientInfo(tokens[0])}
		return res, nil
	}

	res.Filters = make([]filter.Result, 0, len(tokens)/2)
	for i := 0; i < len(tokens)-1; i += 2 {
		res.Filters = append(res.Filters, filter.Resolve(tokens[i], tokens[i+1], reg))
	}

	if len(tokens)%2 == 1 {
		res.Ignored = tokens[len(tokens)-1]
	}

	return res, nil
}
