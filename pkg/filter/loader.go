package filter

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"

	"github.com/glesirok/uridispatch/pkg/pattern"
)

// ErrInvalidDescriptor 注册表中的过滤器定义不合法
var ErrInvalidDescriptor = errors.New("invalid filter descriptor")

var (
	tokenRegex    = regexp2.MustCompile(`^[A-Za-z0-9_.\-]+$`, regexp2.None)
	variableRegex = regexp2.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`, regexp2.None)
)

// Config 表示注册表配置文件
type Config struct {
	Filters map[string]Descriptor `yaml:"filters"`
}

// LoadFromFile 从文件加载注册表
func LoadFromFile(filePath string) (Table, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return Load(data)
}

// Load 从 YAML 内容加载注册表
func Load(data []byte) (Table, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if len(config.Filters) == 0 {
		return nil, fmt.Errorf("no filters defined")
	}

	// 按名称排序，保证报错顺序稳定
	tokens := make([]string, 0, len(config.Filters))
	for token := range config.Filters {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	table := make(Table, len(config.Filters))
	for _, token := range tokens {
		desc := config.Filters[token]
		if err := Validate(token, desc); err != nil {
			return nil, fmt.Errorf("filter %s: %w", token, err)
		}
		table[token] = desc
	}

	return table, nil
}

// Validate 校验过滤器定义的合法性
func Validate(token string, desc Descriptor) error {
	if ok, _ := tokenRegex.MatchString(token); !ok {
		return fmt.Errorf("%w: token %q must match %s", ErrInvalidDescriptor, token, tokenRegex.String())
	}

	if desc.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidDescriptor)
	}

	if desc.Pattern == "" {
		return fmt.Errorf("%w: pattern is required", ErrInvalidDescriptor)
	}

	p, err := pattern.Parse(desc.Pattern)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	for _, ph := range p.Placeholders {
		if ok, _ := variableRegex.MatchString(ph.Name); !ok {
			return fmt.Errorf("%w: variable name %q must match %s", ErrInvalidDescriptor, ph.Name, variableRegex.String())
		}
	}

	return nil
}
