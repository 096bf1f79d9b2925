package dataset

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed dataset.schema.json
var schemaJSON []byte

const schemaURL = "schema://vocabdrill/dataset.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ErrUnsupportedFormat is returned for dataset files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Resolve returns the built-in dataset with the given name, or loads
// nameOrPath from disk when no built-in matches.
func Resolve(nameOrPath string) (*Dataset, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultName
	}
	if _, ok := builtins[nameOrPath]; ok {
		return Builtin(nameOrPath)
	}
	return Load(nameOrPath)
}

// Load reads a dataset file. The format is chosen by extension:
// .json, .yaml/.yml or .xlsx. The result is validated before it is returned.
func Load(path string) (*Dataset, error) {
	var (
		d   *Dataset
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		d, err = loadJSON(path)
	case ".yaml", ".yml":
		d, err = loadYAML(path)
	case ".xlsx":
		d, err = loadXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

func loadJSON(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return decodeJSON(raw)
}

func loadYAML(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	// Route YAML through the same schema check as JSON.
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	return decodeJSON(asJSON)
}

func decodeJSON(raw []byte) (*Dataset, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := datasetSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var d Dataset
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &d, nil
}

func datasetSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(schemaJSON, &doc); err != nil {
			schemaErr = fmt.Errorf("parse dataset schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Encode writes d as JSON or YAML.
func Encode(d *Dataset, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(d, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(d)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
