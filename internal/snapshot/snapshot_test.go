package snapshot

import (
	"bytes"
	"testing"

	"arrayrt/internal/rtvalue"
	"arrayrt/internal/store"
)

func TestCaptureWriteReadRoundTrip(t *testing.T) {
	s := store.NewObjectStore(3)
	s.Write(0, rtvalue.Int64(7))
	s.Write(1, rtvalue.Float64(2.5))
	s.Write(2, rtvalue.Boxed("hi"))

	p := Capture(s, 3)
	var buf bytes.Buffer
	if err := Write(&buf, p); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Length != 3 || got.Shape != uint8(store.ShapeObject) {
		t.Fatalf("Read() = %+v, want Length=3 Shape=Object", got)
	}

	values := got.Values()
	if values[0].Int != 7 || values[1].Float != 2.5 || values[2].String() != "hi" {
		t.Fatalf("Values() = %v", values)
	}
}

func TestReadRejectsUnknownSchema(t *testing.T) {
	p := Capture(store.NewIntStore(1), 0)
	p.Schema = 99
	var buf bytes.Buffer
	if err := Write(&buf, p); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := Read(&buf); err == nil {
		t.Fatal("Read must reject an unrecognised schema version")
	}
}
