package device

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"golang.org/x/exp/constraints"
)

// ElementKind is the element type of a View, the counterpart of a JS typed
// array constructor.
type ElementKind uint8

const (
	Float32 ElementKind = iota + 1
	Float64
	Int32
	Uint16
	Uint8
)

func (k ElementKind) Size() int {
	switch k {
	case Float64:
		return 8
	case Float32, Int32:
		return 4
	case Uint16:
		return 2
	case Uint8:
		return 1
	}
	return 0
}

func (k ElementKind) String() string {
	switch k {
	case Float32:
		return "f32"
	case Float64:
		return "f64"
	case Int32:
		return "i32"
	case Uint16:
		return "u16"
	case Uint8:
		return "u8"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Element lists the types a View can carry.
type Element interface {
	constraints.Float | ~int32 | ~uint16 | ~uint8
}

// View is a typed window on linear memory: little-endian bytes plus the
// element kind needed to reinterpret them on the host side.
type View struct {
	kind  ElementKind
	count int
	bytes []byte
}

// NewView copies data into a little-endian byte view.
func NewView[T Element](data []T) View {
	var zero T
	kind := kindOf(reflect.TypeOf(zero).Kind())
	buf := make([]byte, 0, len(data)*kind.Size())
	for _, v := range data {
		switch kind {
		case Float32:
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v)))
		case Float64:
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(v)))
		case Int32:
			buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(v)))
		case Uint16:
			buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
		case Uint8:
			buf = append(buf, uint8(v))
		}
	}
	return View{kind: kind, count: len(data), bytes: buf}
}

func kindOf(k reflect.Kind) ElementKind {
	switch k {
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Int32:
		return Int32
	case reflect.Uint16:
		return Uint16
	case reflect.Uint8:
		return Uint8
	}
	panic(fmt.Sprintf("device: no view kind for %s", k))
}

func (v View) Kind() ElementKind { return v.kind }

// Len is the element count, not the byte length.
func (v View) Len() int { return v.count }

func (v View) Bytes() []byte { return v.bytes }

// Float32s decodes the view. It returns nil when the view holds another kind.
func (v View) Float32s() []float32 {
	if v.kind != Float32 {
		return nil
	}
	out := make([]float32, v.count)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(v.bytes[i*4:]))
	}
	return out
}

func (v View) Float64s() []float64 {
	if v.kind != Float64 {
		return nil
	}
	out := make([]float64, v.count)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(v.bytes[i*8:]))
	}
	return out
}

func (v View) Int32s() []int32 {
	if v.kind != Int32 {
		return nil
	}
	out := make([]int32, v.count)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(v.bytes[i*4:]))
	}
	return out
}

func (v View) Uint16s() []uint16 {
	if v.kind != Uint16 {
		return nil
	}
	out := make([]uint16, v.count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(v.bytes[i*2:])
	}
	return out
}

func (v View) Uint8s() []uint8 {
	if v.kind != Uint8 {
		return nil
	}
	return append([]uint8(nil), v.bytes...)
}
