package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleRawData []byte

// Format identifies a serialized catalog encoding.
type Format string

const (
	// FormatJSON is a top-level JSON array of items.
	FormatJSON Format = "json"
	// FormatYAML is a YAML document with a top-level "movies" list.
	FormatYAML Format = "yaml"
)

// LoadError reports a catalog that could not be read or decoded. A process
// cannot serve queries without a catalog, so callers treat it as fatal.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported catalog extension %q", filepath.Ext(path))
	}
}

// LoadFile reads and decodes the catalog file at path.
func LoadFile(path string) (*Catalog, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	items, err := Decode(f, format)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	cat, err := New(items)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return cat, nil
}

// Decode parses items from r in the given format.
func Decode(r io.Reader, format Format) ([]Item, error) {
	switch format {
	case FormatJSON:
		var items []Item
		if err := json.NewDecoder(r).Decode(&items); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		if items == nil {
			return nil, errors.New("parse json: expected an array of items")
		}
		return items, nil
	case FormatYAML:
		return decodeYAML(r)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// decodeYAML requires a mapping with a "movies" list. An empty document or
// one without the key is rejected rather than read as an empty catalog.
func decodeYAML(r io.Reader) ([]Item, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parse yaml: empty document")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New(`parse yaml: expected a mapping with a "movies" key`)
	}
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "movies" {
			continue
		}
		list := root.Content[i+1]
		if list.Kind != yaml.SequenceNode {
			return nil, errors.New(`parse yaml: "movies" must be a list`)
		}
		items := make([]Item, 0, len(list.Content))
		if err := list.Decode(&items); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return items, nil
	}
	return nil, errors.New(`parse yaml: missing "movies" key`)
}

var (
	sampleOnce sync.Once
	sample     *Catalog
	sampleErr  error
)

// Embedded returns the sample catalog compiled into the binary. It is parsed
// on first access and shared afterwards.
func Embedded() (*Catalog, error) {
	sampleOnce.Do(loadSample)
	return sample, sampleErr
}

// loadSample parses the embedded YAML catalog data.
func loadSample() {
	items, err := Decode(bytes.NewReader(sampleRawData), FormatYAML)
	if err != nil {
		sampleErr = &LoadError{Source: "embedded", Err: err}
		return
	}
	sample, err = New(items)
	if err != nil {
		sampleErr = &LoadError{Source: "embedded", Err: err}
	}
}
