package vecsift

import (
	"github.com/vecsift/vecsift/codec"
	"github.com/vecsift/vecsift/curate"
)

type options struct {
	codec           codec.Codec
	logger          *Logger
	curate          curate.Options
	requireDocument bool
}

// Option configures Pipeline behavior.
type Option func(*options)

// WithCodec configures the codec used for encoding artifacts.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures structured logging for pipeline runs.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithCap sets the maximum number of records in the curated export.
func WithCap(cap int) Option {
	return func(o *options) {
		o.curate.Cap = cap
	}
}

// WithKeyFields sets the metadata fields projected into export entries.
func WithKeyFields(fields ...string) Option {
	return func(o *options) {
		o.curate.KeyFields = fields
	}
}

// WithDateField sets the metadata field used for recency ranking.
func WithDateField(field string) Option {
	return func(o *options) {
		o.curate.DateField = field
	}
}

// WithRequireDocument controls whether records without a document text
// are excluded from the export. Enabled by default.
func WithRequireDocument(require bool) Option {
	return func(o *options) {
		o.requireDocument = require
	}
}
