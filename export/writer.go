package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/vecsift/vecsift/blobstore"
	"github.com/vecsift/vecsift/codec"
)

// Writer serializes artifacts (export sets, profile reports) to local
// destinations and optionally mirrors them to a blob store for device
// download. Destinations ending in ".gz" are gzip-compressed.
type Writer struct {
	cdc   codec.Codec
	store blobstore.Store
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCodec sets the serialization codec. Nil restores codec.Default.
func WithCodec(c codec.Codec) WriterOption {
	return func(w *Writer) {
		if c == nil {
			c = codec.Default
		}
		w.cdc = c
	}
}

// WithBlobStore mirrors every written artifact to the given store under
// its base file name.
func WithBlobStore(s blobstore.Store) WriterOption {
	return func(w *Writer) {
		w.store = s
	}
}

// NewWriter creates a Writer with codec.Default.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{cdc: codec.Default}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Encode serializes v to out.
func (w *Writer) Encode(out io.Writer, v any) error {
	data, err := w.cdc.Marshal(v)
	if err != nil {
		return fmt.Errorf("export: encode: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// WriteFile serializes v to path, gzipping when the path ends in ".gz",
// and mirrors the artifact to the configured blob store.
func (w *Writer) WriteFile(ctx context.Context, path string, v any) error {
	data, err := w.cdc.Marshal(v)
	if err != nil {
		return fmt.Errorf("export: encode %s: %w", filepath.Base(path), err)
	}

	if strings.HasSuffix(path, ".gz") {
		data, err = gzipBytes(data)
		if err != nil {
			return fmt.Errorf("export: compress %s: %w", filepath.Base(path), err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	if w.store != nil {
		if err := w.store.Put(ctx, filepath.Base(path), data); err != nil {
			return fmt.Errorf("export: publish %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadSetFile reads an export artifact back into a Set, transparently
// decompressing ".gz" sources. The sampling utility and round-trip tests
// use this to consume previously produced artifacts.
func ReadSetFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("export: open %s: %w", filepath.Base(path), err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var set Set
	if err := codec.Default.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("export: decode %s: %w", filepath.Base(path), err)
	}
	return set, nil
}
