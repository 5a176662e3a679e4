// SPDX-License-Identifier: MIT

package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dpchain/errs"
)

// ErrEmpty indicates a document without steps.
var ErrEmpty = errs.New(errs.MakeTransformation, "pipeline: document has no steps")

// Value is a typed literal.
type Value struct {
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
}

// Step is one constructor or cast. Fields a step does not use are ignored.
type Step struct {
	Op           string  `yaml:"op"`
	Type         string  `yaml:"type,omitempty"`
	Lower        any     `yaml:"lower,omitempty"`
	Upper        any     `yaml:"upper,omitempty"`
	Size         *int    `yaml:"size,omitempty"`
	Scale        float64 `yaml:"scale,omitempty"`
	Prob         float64 `yaml:"prob,omitempty"`
	Delta        float64 `yaml:"delta,omitempty"`
	Population   int     `yaml:"population,omitempty"`
	ConstantTime *bool   `yaml:"constant_time,omitempty"`
}

// Document is a parsed pipeline.
type Document struct {
	Name  string `yaml:"name"`
	Input *Value `yaml:"input,omitempty"`
	Steps []Step `yaml:"steps"`
	DIn   *Value `yaml:"d_in,omitempty"`
	DOut  *Value `yaml:"d_out,omitempty"`
}

// Parse decodes one document from r. Unknown keys are rejected.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, errs.Errorf(errs.TypeParse, "pipeline: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, ErrEmpty
	}
	for i, s := range doc.Steps {
		if _, ok := ops[s.Op]; !ok {
			return nil, errs.Errorf(errs.TypeParse, "pipeline: step %d: unknown op %q", i, s.Op)
		}
	}
	return &doc, nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b))
}

// Load parses the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Marshal encodes doc as YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}
