package encoder

import (
	"fmt"
	"strings"
)

// Registry holds the encoders a normalized image can be written with.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with the JPEG and PNG encoders.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{&JPEGEncoder{}, &PNGEncoder{}} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Select picks the output encoder for a decoded image: lossless PNG when
// the source carries transparency, compressed JPEG otherwise.
func (r *Registry) Select(hasAlpha bool) Encoder {
	if hasAlpha {
		return r.encoders["png"]
	}
	return r.encoders["jpeg"]
}

// Available returns all registered format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"jpeg", "png"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("encoders: %s", strings.Join(r.Available(), ", "))
}
