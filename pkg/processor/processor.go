package processor

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/glesirok/uridispatch/pkg/dispatch"
	"github.com/glesirok/uridispatch/pkg/filter"
	"github.com/glesirok/uridispatch/pkg/pattern"
)

// FilterRecord 是报告中一个过滤器的结果
type FilterRecord struct {
	Status  filter.Status  `yaml:"status"`
	Token   string         `yaml:"token"`
	Filter  string         `yaml:"filter,omitempty"`
	Message string         `yaml:"message"`
	Params  pattern.Params `yaml:"params,omitempty"`
}

// Record 是报告中一个路径的结果
type Record struct {
	ID        string         `yaml:"id"`
	Path      string         `yaml:"path"`
	Resource  string         `yaml:"resource,omitempty"`
	NoFilters bool           `yaml:"no_filters,omitempty"`
	Filters   []FilterRecord `yaml:"filters,omitempty"`
	Ignored   string         `yaml:"ignored,omitempty"`
	Error     string         `yaml:"error,omitempty"`
}

// Processor 批量分发路径列表
type Processor struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	stdout     io.Writer
}

// NewProcessor 创建处理器
func NewProcessor(registryFile string, logger *slog.Logger) (*Processor, error) {
	table, err := filter.LoadFromFile(registryFile)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	return New(table, logger), nil
}

// New 使用已加载的注册表创建处理器
func New(reg filter.Registry, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		dispatcher: dispatch.New(reg, dispatch.WithLogger(logger)),
		logger:     logger,
		stdout:     os.Stdout,
	}
}

// SetOutput 设置 dry-run 时的输出位置
func (p *Processor) SetOutput(w io.Writer) {
	p.stdout = w
}

// Report 分发每个路径并生成记录
func (p *Processor) Report(paths []string) []Record {
	records := make([]Record, 0, len(paths))
	for _, raw := range paths {
		records = append(records, p.record(raw))
	}
	return records
}

func (p *Processor) record(raw string) Record {
	rec := Record{ID: uuid.NewString(), Path: raw}

	res, err := p.dispatcher.Dispatch(raw)
	if err != nil {
		rec.Error = err.Error()
		return rec
	}

	rec.Resource = res.ResourceID
	rec.NoFilters = res.NoFilters
	rec.Ignored = res.Ignored
	for _, f := range res.Filters {
		rec.Filters = append(rec.Filters, FilterRecord{
			Status:  f.Status,
			Token:   f.Token,
			Filter:  f.Filter,
			Message: f.Message(),
			Params:  f.Params,
		})
	}
	return rec
}

// WriteReport 以 YAML 输出报告（保持2空格缩进）
func WriteReport(w io.Writer, records []Record) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return encoder.Close()
}

// ReadPaths 读取路径列表，每行一个，忽略空行和 # 注释
func ReadPaths(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			// 移除 UTF-8 BOM
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// ProcessFile 处理单个路径列表文件
func (p *Processor) ProcessFile(inputPath, outputPath string, dryRun bool) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	paths, err := ReadPaths(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("read paths: %w", err)
	}

	records := p.Report(paths)

	if dryRun || outputPath == "" {
		if dryRun {
			fmt.Fprintf(p.stdout, "# Dry-run: %s\n", inputPath)
		}
		return WriteReport(p.stdout, records)
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, records); err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	p.logger.Info("report written", "input", inputPath, "output", outputPath, "paths", len(paths))
	return nil
}

// ProcessDirectory 批量处理目录下的所有 .paths / .txt 文件
func (p *Processor) ProcessDirectory(inputDir, outputDir string, dryRun bool) error {
	// 确保输出目录存在
	if !dryRun && outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	return filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		ext := filepath.Ext(path)
		if info.IsDir() || (ext != ".paths" && ext != ".txt") {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		// 报告写在输出目录，或者写在输入文件旁边
		reportName := strings.TrimSuffix(relPath, ext) + ".yaml"
		var outputPath string
		if outputDir != "" {
			outputPath = filepath.Join(outputDir, reportName)
			if !dryRun {
				if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}
		} else {
			outputPath = filepath.Join(inputDir, reportName)
		}

		p.logger.Debug("processing", "file", path)
		if err := p.ProcessFile(path, outputPath, dryRun); err != nil {
			return fmt.Errorf("process %s: %w", path, err)
		}

		return nil
	})
}
