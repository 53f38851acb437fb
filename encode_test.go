package wld

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestEncode_Writer(t *testing.T) {
	doc := sampleDoc()
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), mustEncode(t, doc)) {
		t.Fatal("stream form differs from Document.Encode")
	}
}

func TestEncode_NilDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEncode_WriterError(t *testing.T) {
	if err := Encode(failWriter{}, sampleDoc()); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected the writer's error, got %v", err)
	}
}

func TestEncode_UnmappableNameSurfaces(t *testing.T) {
	doc := sampleDoc()
	doc.Strings.Add("世界")
	var buf bytes.Buffer
	if err := Encode(&buf, doc); !errors.Is(err, ErrStringEncoding) {
		t.Fatalf("expected ErrStringEncoding, got %v", err)
	}
}
