package processor_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glesirok/uridispatch/pkg/filter"
	"github.com/glesirok/uridispatch/pkg/processor"
	"github.com/rohanthewiz/assert"
	"gopkg.in/yaml.v3"
)

var registry = filter.Table{
	"resize": {Title: "Resize", Pattern: "{width|integer}x{height|integer}"},
	"rotate": {Title: "Rotate", Pattern: "{angle|float}"},
}

func TestReadPaths(t *testing.T) {
	in := "\uFEFF/item/resize/1x2\n\n# comment\n  /other  \n"
	paths, err := processor.ReadPaths(strings.NewReader(in))
	assert.Nil(t, err)
	assert.DeepEqual(t, paths, []string{"/item/resize/1x2", "/other"})
}

func TestReport(t *testing.T) {
	p := processor.New(registry, nil)
	records := p.Report([]string{"/item", "/item/resize/100x200/rotate", "/item/%zz"})
	assert.Equal(t, len(records), 3)

	assert.True(t, records[0].NoFilters)
	assert.NotEqual(t, records[0].ID, "")
	assert.NotEqual(t, records[0].ID, records[1].ID)

	assert.Equal(t, records[1].Resource, "item")
	assert.Equal(t, len(records[1].Filters), 1)
	assert.Equal(t, records[1].Filters[0].Status, filter.StatusOK)
	assert.Equal(t, records[1].Filters[0].Message, "Ok")
	assert.Equal(t, records[1].Ignored, "rotate")

	assert.True(t, strings.Contains(records[2].Error, "decode path"))
}

func TestWriteReport(t *testing.T) {
	p := processor.New(registry, nil)
	var buf bytes.Buffer
	err := processor.WriteReport(&buf, p.Report([]string{"/item/resize/100x200"}))
	assert.Nil(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, "status: ok"))
	assert.True(t, strings.Contains(out, "filter: Resize"))
	assert.True(t, strings.Index(out, "width: 100") < strings.Index(out, "height: 200"))

	var decoded []map[string]any
	assert.Nil(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, len(decoded), 1)
	assert.Equal(t, decoded[0]["resource"], any("item"))
}

func TestProcessFileDryRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "paths.txt")
	assert.Nil(t, os.WriteFile(in, []byte("/item/resize/\n"), 0644))

	var buf bytes.Buffer
	p := processor.New(registry, nil)
	p.SetOutput(&buf)

	out := filepath.Join(dir, "report.yaml")
	assert.Nil(t, p.ProcessFile(in, out, true))
	assert.True(t, strings.Contains(buf.String(), "# Dry-run"))
	assert.True(t, strings.Contains(buf.String(), "Not enough info to Resize"))

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessDirectory(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	assert.Nil(t, os.MkdirAll(filepath.Join(in, "nested"), 0755))
	assert.Nil(t, os.WriteFile(filepath.Join(in, "a.paths"), []byte("/a/resize/1x1\n"), 0644))
	assert.Nil(t, os.WriteFile(filepath.Join(in, "nested", "b.txt"), []byte("/b/rotate/1.5\n"), 0644))
	assert.Nil(t, os.WriteFile(filepath.Join(in, "skip.md"), []byte("/c\n"), 0644))

	p := processor.New(registry, nil)
	assert.Nil(t, p.ProcessDirectory(in, out, false))

	data, err := os.ReadFile(filepath.Join(out, "a.yaml"))
	assert.Nil(t, err)
	assert.True(t, strings.Contains(string(data), "resource: a"))

	data, err = os.ReadFile(filepath.Join(out, "nested", "b.yaml"))
	assert.Nil(t, err)
	assert.True(t, strings.Contains(string(data), "angle: 1.5"))

	_, err = os.Stat(filepath.Join(out, "skip.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewProcessorBadRegistry(t *testing.T) {
	_, err := processor.NewProcessor(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.True(t, err != nil)
	assert.True(t, strings.Contains(err.Error(), "load registry"))
}
