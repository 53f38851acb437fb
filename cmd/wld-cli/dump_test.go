package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

func TestParseCompression(t *testing.T) {
	cases := []struct {
		in   string
		want dumpCompression
	}{
		{"", compressNone},
		{"none", compressNone},
		{"zstd", compressZstd},
		{"lz4", compressLZ4},
		{"brotli", compressBrotli},
		{"br", compressBrotli},
	}
	for _, c := range cases {
		got, err := parseCompression(c.in)
		if err != nil {
			t.Errorf("parseCompression(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseCompression(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	if _, err := parseCompression("gzip"); err == nil {
		t.Error("expected error for unknown compression name")
	}
}

func TestExportFragments_Plain(t *testing.T) {
	doc := sampleDocument(t)
	dir := filepath.Join(t.TempDir(), "dump")

	n, err := exportFragments(doc, dir, compressNone)
	if err != nil {
		t.Fatalf("exportFragments: %v", err)
	}
	if n != len(doc.Fragments) {
		t.Errorf("exported %d fragments, want %d", n, len(doc.Fragments))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(doc.Fragments) {
		t.Errorf("directory holds %d files, want %d", len(entries), len(doc.Fragments))
	}

	// First fragment is the TextureImages, type 0x03, stored verbatim.
	data, err := os.ReadFile(filepath.Join(dir, "0001_0x03.frag"))
	if err != nil {
		t.Fatalf("read exported fragment: %v", err)
	}
	want, err := doc.Fragments[0].Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, want) {
		t.Error("exported body differs from the fragment encoding")
	}
}

func TestExportFragments_Zstd(t *testing.T) {
	doc := sampleDocument(t)
	dir := filepath.Join(t.TempDir(), "dump")

	if _, err := exportFragments(doc, dir, compressZstd); err != nil {
		t.Fatalf("exportFragments: %v", err)
	}

	// Fragment 5 is the Mesh, type 0x36.
	data, err := os.ReadFile(filepath.Join(dir, "0005_0x36.frag.zst"))
	if err != nil {
		t.Fatalf("read exported fragment: %v", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	got, err := dec.DecodeAll(data, nil)
	if err != nil {
		t.Fatalf("zstd decode: %v", err)
	}
	want, err := doc.Fragments[4].Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("decompressed body differs from the fragment encoding")
	}
}

func TestExportFragments_LZ4(t *testing.T) {
	doc := sampleDocument(t)
	dir := filepath.Join(t.TempDir(), "dump")

	if _, err := exportFragments(doc, dir, compressLZ4); err != nil {
		t.Fatalf("exportFragments: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "0005_0x36.frag.lz4"))
	if err != nil {
		t.Fatalf("read exported fragment: %v", err)
	}
	got, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("lz4 decode: %v", err)
	}
	want, err := doc.Fragments[4].Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("decompressed body differs from the fragment encoding")
	}
}

func TestExportFragments_Brotli(t *testing.T) {
	doc := sampleDocument(t)
	dir := filepath.Join(t.TempDir(), "dump")

	if _, err := exportFragments(doc, dir, compressBrotli); err != nil {
		t.Fatalf("exportFragments: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "0005_0x36.frag.br"))
	if err != nil {
		t.Fatalf("read exported fragment: %v", err)
	}
	got, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("brotli decode: %v", err)
	}
	want, err := doc.Fragments[4].Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("decompressed body differs from the fragment encoding")
	}
}

func TestCompressionWrappers_ReturnErrors(t *testing.T) {
	// zstd writer construction error
	origZstd := newZstdWriter
	newZstdWriter = func() (*zstd.Encoder, error) { return nil, io.ErrClosedPipe }
	if _, err := zstdCompress([]byte("x")); err == nil {
		newZstdWriter = origZstd
		t.Fatal("expected error")
	}
	newZstdWriter = origZstd

	// lz4 close error
	origLZ4Close := lz4Close
	lz4Close = func(_ *lz4.Writer) error { return io.ErrClosedPipe }
	if _, err := lz4Compress([]byte("x")); err == nil {
		lz4Close = origLZ4Close
		t.Fatal("expected error")
	}
	lz4Close = origLZ4Close

	// brotli close error
	origBrotliClose := brotliClose
	brotliClose = func(_ *brotli.Writer) error { return io.ErrClosedPipe }
	if _, err := brotliCompress([]byte("x")); err == nil {
		brotliClose = origBrotliClose
		t.Fatal("expected error")
	}
	brotliClose = origBrotliClose

	// export surfaces the codec error
	origZstd = newZstdWriter
	newZstdWriter = func() (*zstd.Encoder, error) { return nil, io.ErrClosedPipe }
	_, err := exportFragments(sampleDocument(t), filepath.Join(t.TempDir(), "dump"), compressZstd)
	newZstdWriter = origZstd
	if err == nil {
		t.Fatal("expected export error")
	}
}
