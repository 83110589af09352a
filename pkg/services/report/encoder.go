package report

import (
	"fmt"
	"slices"
	"sync"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

// Encoder serializes an assembled report. Encoders must keep section order.
type Encoder interface {
	Encode(r *domain.Report) ([]byte, error)
	ContentType() string
	Extension() string
}

// Registry manages report encoders by format
type Registry interface {
	// Register adds an encoder for a format
	Register(format Format, encoder Encoder) error
	// Get returns the encoder registered for format
	Get(format Format) (Encoder, error)
	// Formats returns the registered formats, sorted
	Formats() []Format
}

type registry struct {
	mu       sync.RWMutex
	encoders map[Format]Encoder
}

// NewRegistry creates an empty encoder registry
func NewRegistry() Registry {
	return &registry{
		encoders: make(map[Format]Encoder),
	}
}

// DefaultRegistry registers every built-in encoder.
func DefaultRegistry() Registry {
	r := NewRegistry()
	for format, encoder := range map[Format]Encoder{
		FormatStructured: JSONEncoder{},
		FormatYAML:       YAMLEncoder{},
		FormatDelimited:  CSVEncoder{},
		FormatWorkbook:   WorkbookEncoder{},
	} {
		// formats are distinct keys of the literal above
		_ = r.Register(format, encoder)
	}
	return r
}

func (r *registry) Register(format Format, encoder Encoder) error {
	if format == "" {
		return fmt.Errorf("format cannot be empty")
	}
	if encoder == nil {
		return fmt.Errorf("encoder cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encoders[format]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateEncoder, format)
	}

	r.encoders[format] = encoder
	return nil
}

func (r *registry) Get(format Format) (Encoder, error) {
	r.mu.RLock()
	encoder, exists := r.encoders[format]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return encoder, nil
}

func (r *registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]Format, 0, len(r.encoders))
	for format := range r.encoders {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}
