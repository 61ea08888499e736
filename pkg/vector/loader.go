package vector

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mctp-protocol/mctp-go/pkg/mctp"
)

// Parse parses a vector file from YAML bytes.
func Parse(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	var f File
	if err := doc.Decode(&f); err != nil {
		return nil, &LoadError{
			Message: "failed to decode vectors",
			Cause:   err,
		}
	}

	if len(f.Vectors) == 0 {
		return nil, &LoadError{
			Message: "file must have at least one vector",
		}
	}

	lines := vectorLines(&doc)
	for i := range f.Vectors {
		if err := f.Vectors[i].validate(); err != nil {
			le := &LoadError{
				Message: fmt.Sprintf("vector %d", i),
				Cause:   err,
			}
			if i < len(lines) {
				le.Line = lines[i]
			}
			return nil, le
		}
	}

	return &f, nil
}

// vectorLines returns the source line of each entry in the vectors list.
func vectorLines(doc *yaml.Node) []int {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "vectors" {
			continue
		}
		seq := root.Content[i+1]
		lines := make([]int, len(seq.Content))
		for j, n := range seq.Content {
			lines[j] = n.Line
		}
		return lines
	}
	return nil
}

// Load loads a vector file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	f, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{
			File:    path,
			Message: err.Error(),
		}
	}

	for i := range f.Vectors {
		f.Vectors[i].Source = path
	}
	return f, nil
}

// LoadDirectory loads all vectors from a directory in file name order.
// Only files with .yaml or .yml extensions are loaded.
func LoadDirectory(dir string) ([]Vector, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var vectors []Vector
	for _, name := range names {
		f, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, f.Vectors...)
	}
	return vectors, nil
}

// LoadPaths loads vectors from files and directories.
func LoadPaths(paths ...string) ([]Vector, error) {
	var vectors []Vector
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, &LoadError{
				File:    p,
				Message: "failed to stat path",
				Cause:   err,
			}
		}
		if info.IsDir() {
			vs, err := LoadDirectory(p)
			if err != nil {
				return nil, err
			}
			vectors = append(vectors, vs...)
			continue
		}
		f, err := Load(p)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, f.Vectors...)
	}
	return vectors, nil
}

func (v *Vector) validate() error {
	if v.Name == "" {
		return errors.New("name is required")
	}
	shape, err := mctp.ParseShape(v.Shape)
	if err != nil {
		return err
	}
	if _, err := ParseWord(v.Bytes); err != nil {
		return fmt.Errorf("bytes: %w", err)
	}
	if v.Canonical != "" {
		if v.Error != "" {
			return errors.New("canonical and error are mutually exclusive")
		}
		if _, err := ParseWord(v.Canonical); err != nil {
			return fmt.Errorf("canonical: %w", err)
		}
	}
	layout := shape.Layout()
	for name := range v.Fields {
		if _, ok := layout.Field(name); !ok {
			return fmt.Errorf("field %q is not part of the %s layout", name, shape)
		}
	}
	if v.Error != "" {
		if _, ok := layout.Field(v.Error); !ok {
			return fmt.Errorf("error field %q is not part of the %s layout", v.Error, shape)
		}
	}
	return nil
}

// ParseWord parses a 4-byte header written as hex, most significant byte
// first. Whitespace, underscores and a leading 0x are ignored.
func ParseWord(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '_', ':':
			return -1
		}
		return r
	}, s)

	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, err
	}
	if len(b) != mctp.HeaderSize {
		return 0, fmt.Errorf("%w: got %d", mctp.ErrShortHeader, len(b))
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// FormatWord formats word as space separated hex bytes, most significant first.
func FormatWord(word uint32) string {
	return fmt.Sprintf("%02X %02X %02X %02X", byte(word>>24), byte(word>>16), byte(word>>8), byte(word))
}
