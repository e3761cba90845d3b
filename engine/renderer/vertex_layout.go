package renderer

import (
	"fmt"

	"github.com/spaghettifunk/jackal/engine/core"
)

// AttributeType is the component type of a vertex attribute.
type AttributeType uint8

const (
	AttributeInt8 AttributeType = iota
	AttributeUint8
	AttributeInt16
	AttributeUint16
	AttributeInt32
	AttributeUint32
	AttributeHalfFloat
	AttributeFloat
	AttributeDouble
)

// Size returns the component size in bytes.
func (t AttributeType) Size() uint32 {
	switch t {
	case AttributeInt8, AttributeUint8:
		return 1
	case AttributeInt16, AttributeUint16, AttributeHalfFloat:
		return 2
	case AttributeDouble:
		return 8
	}
	return 4
}

func (t AttributeType) String() string {
	switch t {
	case AttributeInt8:
		return "int8"
	case AttributeUint8:
		return "uint8"
	case AttributeInt16:
		return "int16"
	case AttributeUint16:
		return "uint16"
	case AttributeInt32:
		return "int32"
	case AttributeUint32:
		return "uint32"
	case AttributeHalfFloat:
		return "half"
	case AttributeFloat:
		return "float"
	case AttributeDouble:
		return "double"
	}
	return "unknown"
}

// VertexAttribute is one interleaved field of a vertex.
type VertexAttribute struct {
	Type       AttributeType
	Components int32
	Normalized bool
	Offset     uint32
}

// VertexLayout describes the interleaved attributes of a vertex buffer.
// The builder methods record the first error and ignore the rest of the
// chain; it is returned by Err and by VertexArray.Attach.
//
//	layout := renderer.NewVertexLayout().Float(3, false).Float(2, false).Uint8(4, true)
type VertexLayout struct {
	attributes []VertexAttribute
	stride     uint32
	err        error
}

func NewVertexLayout() *VertexLayout {
	return &VertexLayout{}
}

func (l *VertexLayout) add(kind AttributeType, count int32, normalized bool) *VertexLayout {
	if l.err != nil {
		return l
	}
	if count <= 0 || count > 4 {
		l.err = fmt.Errorf("vertex layout: %s attribute with %d components: %w", kind, count, core.ErrInvalidArgument)
		return l
	}
	l.attributes = append(l.attributes, VertexAttribute{
		Type:       kind,
		Components: count,
		Normalized: normalized,
		Offset:     l.stride,
	})
	l.stride += kind.Size() * uint32(count)
	return l
}

func (l *VertexLayout) Int8(count int32, normalized bool) *VertexLayout {
	return l.add(AttributeInt8, count, normalized)
}

func (l *VertexLayout) Uint8(count int32, normalized bool) *VertexLayout {
	return l.add(AttributeUint8, count, normalized)
}

func (l *VertexLayout) Int16(count int32, normalized bool) *VertexLayout {
	return l.add(AttributeInt16, count, normalized)
}

func (l *VertexLayout) Uint16(count int32, normalized bool) *VertexLayout {
	return l.add(AttributeUint16, count, normalized)
}

func (l *VertexLayout) Int32(count int32, normalized bool) *VertexLayout {
	return l.add(AttributeInt32, count, normalized)
}

func (l *VertexLayout) Uint32(count int32, normalized bool) *VertexLayout {
	return l.add(AttributeUint32, count, normalized)
}

func (l *VertexLayout) HalfFloat(count int32, normalized bool) *VertexLayout {
	return l.add(AttributeHalfFloat, count, normalized)
}

func (l *VertexLayout) Float(count int32, normalized bool) *VertexLayout {
	return l.add(AttributeFloat, count, normalized)
}

func (l *VertexLayout) Double(count int32, normalized bool) *VertexLayout {
	return l.add(AttributeDouble, count, normalized)
}

func (l *VertexLayout) Attributes() []VertexAttribute {
	return l.attributes
}

// Stride is the size of one vertex in bytes.
func (l *VertexLayout) Stride() uint32 {
	return l.stride
}

func (l *VertexLayout) Err() error {
	return l.err
}

// validate checks the layout against the device limits.
func (l *VertexLayout) validate(limits DeviceLimits) error {
	if l.err != nil {
		return l.err
	}
	if len(l.attributes) == 0 {
		return fmt.Errorf("vertex layout: no attributes: %w", core.ErrInvalidArgument)
	}
	if limits.MaxVertexAttributes > 0 && len(l.attributes) > limits.MaxVertexAttributes {
		return fmt.Errorf("vertex layout: %d attributes, device supports %d: %w",
			len(l.attributes), limits.MaxVertexAttributes, core.ErrDeviceLimitExceeded)
	}
	return nil
}
