// Package snapshot exports a finished array store's contents for
// interop/debug dumps, shaped after a disk-cache payload encoding pattern
// (internal/driver/dcache.go): a versioned struct, encoded and decoded
// through a single msgpack codec.
package snapshot

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"arrayrt/internal/rtvalue"
	"arrayrt/internal/store"
)

// schemaVersion guards against decoding a Payload written by an
// incompatible future format.
const schemaVersion uint16 = 1

// Element is one boxed slot, tagged so a decoder without access to this
// package's rtvalue types can still interpret the dump.
type Element struct {
	Kind  uint8
	Int   int64
	Float float64
	Text  string // used only when Kind is KindBoxed: the Box's String() rendering
}

// Payload is the on-wire snapshot of one finished store.
type Payload struct {
	Schema   uint16
	Shape    uint8
	Length   int
	Elements []Element
}

// Capture boxes the first length elements of s into a Payload.
func Capture(s store.Store, length int) Payload {
	elems := make([]Element, length)
	for i := 0; i < length; i++ {
		v := s.Read(i)
		elems[i] = encodeElement(v)
	}
	return Payload{
		Schema:   schemaVersion,
		Shape:    uint8(s.Shape()),
		Length:   length,
		Elements: elems,
	}
}

func encodeElement(v rtvalue.Value) Element {
	e := Element{Kind: uint8(v.Kind)}
	switch v.Kind {
	case rtvalue.KindInt:
		e.Int = v.Int
	case rtvalue.KindFloat:
		e.Float = v.Float
	case rtvalue.KindBoxed:
		e.Text = v.String()
	}
	return e
}

// Write encodes p to w.
func Write(w io.Writer, p Payload) error {
	return msgpack.NewEncoder(w).Encode(&p)
}

// Read decodes a Payload from r, rejecting an unrecognised schema version.
func Read(r io.Reader) (Payload, error) {
	var p Payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return Payload{}, err
	}
	if p.Schema != schemaVersion {
		return Payload{}, fmt.Errorf("snapshot: unsupported schema version %d (want %d)", p.Schema, schemaVersion)
	}
	return p, nil
}

// Values reconstructs the boxed rtvalue.Value sequence from a Payload,
// losing only the original Box type for boxed elements (preserved as their
// string rendering, per Element's Text field).
func (p Payload) Values() []rtvalue.Value {
	out := make([]rtvalue.Value, len(p.Elements))
	for i, e := range p.Elements {
		switch rtvalue.Kind(e.Kind) {
		case rtvalue.KindInt:
			out[i] = rtvalue.Int64(e.Int)
		case rtvalue.KindFloat:
			out[i] = rtvalue.Float64(e.Float)
		case rtvalue.KindBoxed:
			out[i] = rtvalue.Boxed(e.Text)
		}
	}
	return out
}
