package capabilities

import (
	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/vocabulary"
)

// supported is the shape shared by boolean-constant terms. These terms are
// not records; the annotation value is the boolean itself.
type supported struct {
	Value vocabulary.Optional[bool]
}

func (s *supported) decode(expr edm.Expression) bool {
	switch v := expr.(type) {
	case nil:
		s.Value = vocabulary.Some(true)
	case edm.BoolConstant:
		s.Value = vocabulary.Some(bool(v))
	default:
		return false
	}
	return true
}

// IsSupported returns the annotated value, defaulting to true
func (s *supported) IsSupported() bool {
	return s.Value.Or(true)
}

// BatchSupported records Capabilities.BatchSupported
type BatchSupported struct{ supported }

// Kind implements Restriction
func (*BatchSupported) Kind() Kind { return KindBatchSupported }

// TopSupported records Capabilities.TopSupported
type TopSupported struct{ supported }

// Kind implements Restriction
func (*TopSupported) Kind() Kind { return KindTopSupported }

// SkipSupported records Capabilities.SkipSupported
type SkipSupported struct{ supported }

// Kind implements Restriction
func (*SkipSupported) Kind() Kind { return KindSkipSupported }

// KeyAsSegmentSupported records Capabilities.KeyAsSegmentSupported
type KeyAsSegmentSupported struct{ supported }

// Kind implements Restriction
func (*KeyAsSegmentSupported) Kind() Kind { return KindKeyAsSegmentSupported }

// IndexableByKey records Capabilities.IndexableByKey
type IndexableByKey struct{ supported }

// Kind implements Restriction
func (*IndexableByKey) Kind() Kind { return KindIndexableByKey }

// ComputeSupported records Capabilities.ComputeSupported
type ComputeSupported struct{ supported }

// Kind implements Restriction
func (*ComputeSupported) Kind() Kind { return KindComputeSupported }
