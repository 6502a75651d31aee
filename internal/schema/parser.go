// Package schema loads declaration modules described in YAML, JSON or TOML.
package schema

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension. Unknown
// extensions yield FormatAuto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatAuto
	}
}

// Parser loads descriptor documents.
type Parser interface {
	Parse(path string) (*Document, error)
	ParseBytes(data []byte, format Format) (*Document, error)
}

type parserImpl struct {
	stdin io.Reader
}

// New returns the default parser. The path "-" reads standard input.
func New() Parser {
	return &parserImpl{stdin: os.Stdin}
}

func (p *parserImpl) Parse(path string) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(p.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	doc, err := p.ParseBytes(data, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return doc, nil
}

func (p *parserImpl) ParseBytes(data []byte, format Format) (*Document, error) {
	var (
		doc Document
		err error
	)
	switch format {
	case FormatYAML:
		err = decodeYAML(data, &doc)
	case FormatJSON:
		err = decodeJSON(data, &doc)
	case FormatTOML:
		err = decodeTOML(data, &doc)
	case FormatAuto:
		// Try YAML first, then JSON
		if yerr := decodeYAML(data, &doc); yerr != nil {
			doc = Document{}
			if jerr := decodeJSON(data, &doc); jerr != nil {
				err = errors.WithHint(
					errors.New("unable to parse document as YAML or JSON"),
					"use a .yaml, .json or .toml extension to pick the format explicitly",
				)
			}
		}
	default:
		err = errors.Newf("unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if err := doc.Check(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func decodeYAML(data []byte, doc *Document) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "yaml")
	}
	return nil
}

func decodeJSON(data []byte, doc *Document) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		return errors.Wrap(err, "json")
	}
	return nil
}

func decodeTOML(data []byte, doc *Document) error {
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(doc)
	if err != nil {
		return errors.Wrap(err, "toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Newf("toml: unknown key %s", undecoded[0].String())
	}
	return nil
}
