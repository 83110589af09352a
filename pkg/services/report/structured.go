package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// JSONEncoder writes the report as one indented object keyed by section.
type JSONEncoder struct{}

func (JSONEncoder) ContentType() string { return "application/json" }
func (JSONEncoder) Extension() string   { return "json" }

func (JSONEncoder) Encode(r *domain.Report) ([]byte, error) {
	sections := orderedmap.New[string, json.RawMessage]()
	for _, s := range r.Sections {
		sections.Set(s.Key, s.Value)
	}

	raw, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent report: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// DecodeStructured parses JSONEncoder output back into sections, in document order.
func DecodeStructured(data []byte) (*domain.Report, error) {
	sections := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, sections); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	r := &domain.Report{Sections: make([]domain.ReportSection, 0, sections.Len())}
	for pair := sections.Oldest(); pair != nil; pair = pair.Next() {
		var buf bytes.Buffer
		if err := json.Compact(&buf, pair.Value); err != nil {
			return nil, fmt.Errorf("failed to compact section %s: %w", pair.Key, err)
		}
		r.Sections = append(r.Sections, domain.ReportSection{Key: pair.Key, Value: buf.Bytes()})
	}
	return r, nil
}

// YAMLEncoder writes the same ordered object as JSONEncoder, as YAML.
type YAMLEncoder struct{}

func (YAMLEncoder) ContentType() string { return "application/yaml" }
func (YAMLEncoder) Extension() string   { return "yaml" }

func (YAMLEncoder) Encode(r *domain.Report) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range r.Sections {
		// JSON is valid YAML, and decoding into a node keeps key order.
		var doc yaml.Node
		if err := yaml.Unmarshal(s.Value, &doc); err != nil {
			return nil, fmt.Errorf("failed to convert section %s: %w", s.Key, err)
		}
		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if len(doc.Content) > 0 {
			value = doc.Content[0]
		}
		plain(value)
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Key},
			value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush report: %w", err)
	}
	return buf.Bytes(), nil
}

// plain drops the JSON flow style and quoting so the output reads as block YAML.
func plain(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		plain(c)
	}
}
