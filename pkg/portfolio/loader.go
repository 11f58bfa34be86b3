package portfolio

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content/default.yaml
var embeddedContent embed.FS

const defaultContentName = "content/default.yaml"

// Default returns the embedded pt-BR content.
func Default() Content {
	data, err := fs.ReadFile(embeddedContent, defaultContentName)
	if err != nil {
		panic(fmt.Sprintf("portfolio: embedded content missing: %v", err))
	}
	content, err := Parse(data, defaultContentName)
	if err != nil {
		panic(err)
	}
	return content
}

// Load reads content from a file on disk.
func Load(path string) (Content, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Content{}, fmt.Errorf("portfolio: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads content from name within fsys.
func LoadFS(fsys fs.FS, name string) (Content, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Content{}, fmt.Errorf("portfolio: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Parse decodes JSON or YAML content. The format is chosen by the name's
// extension; unknown extensions try JSON first, then YAML.
func Parse(data []byte, name string) (Content, error) {
	var (
		content Content
		err     error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		err = decodeJSON(data, &content)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &content)
	default:
		if err = decodeJSON(data, &content); err != nil {
			content = Content{}
			err = yaml.Unmarshal(data, &content)
		}
	}
	if err != nil {
		return Content{}, fmt.Errorf("portfolio: decode %s: %w", name, err)
	}
	if err := content.Validate(); err != nil {
		return Content{}, err
	}
	return content, nil
}

func decodeJSON(data []byte, target *Content) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}
