package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/logicossoftware/go-wld"
)

// Function variables for testing injection.
var (
	newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) }
	lz4Close      = func(w *lz4.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
	brotliWrite   = func(w *brotli.Writer, p []byte) (int, error) { return w.Write(p) }
)

// dumpCompression selects the codec applied to exported fragment bodies.
type dumpCompression int

const (
	compressNone dumpCompression = iota
	compressZstd
	compressLZ4
	compressBrotli
)

func parseCompression(name string) (dumpCompression, error) {
	switch name {
	case "", "none":
		return compressNone, nil
	case "zstd":
		return compressZstd, nil
	case "lz4":
		return compressLZ4, nil
	case "brotli", "br":
		return compressBrotli, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, zstd, lz4, or brotli)", name)
	}
}

// ext is the file name suffix appended after ".frag", matching what the
// standalone decompressor tools expect.
func (c dumpCompression) ext() string {
	switch c {
	case compressZstd:
		return ".zst"
	case compressLZ4:
		return ".lz4"
	case compressBrotli:
		return ".br"
	default:
		return ""
	}
}

func (c dumpCompression) compress(in []byte) ([]byte, error) {
	switch c {
	case compressNone:
		return in, nil
	case compressZstd:
		return zstdCompress(in)
	case compressLZ4:
		return lz4Compress(in)
	case compressBrotli:
		return brotliCompress(in)
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}
}

// exportFragments writes every fragment body in doc to its own file
// under dir, creating dir if needed. Files are named by fragment index
// and type code so a directory listing reads in document order.
func exportFragments(doc *wld.Document, dir string, comp dumpCompression) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	for i, f := range doc.Fragments {
		body, err := f.Encode()
		if err != nil {
			return i, fmt.Errorf("fragment %d: %w", i+1, err)
		}
		out, err := comp.compress(body)
		if err != nil {
			return i, fmt.Errorf("fragment %d: %w", i+1, err)
		}
		name := fmt.Sprintf("%04d_0x%02X.frag%s", i+1, f.TypeCode(), comp.ext())
		if err := os.WriteFile(filepath.Join(dir, name), out, 0o644); err != nil {
			return i, err
		}
	}
	return len(doc.Fragments), nil
}

// zstdCompress compresses in using the Zstandard algorithm.
func zstdCompress(in []byte) ([]byte, error) {
	enc, err := newZstdWriter()
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

// lz4Compress compresses in using the LZ4 frame format.
func lz4Compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(in); err != nil {
		_ = lz4Close(zw)
		return nil, err
	}
	if err := lz4Close(zw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// brotliCompress compresses in using the Brotli algorithm.
func brotliCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	if _, err := brotliWrite(bw, in); err != nil {
		_ = brotliClose(bw)
		return nil, err
	}
	if err := brotliClose(bw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
