// Package metadata provides a typed scalar model for record metadata.
//
// Source datastores hand back loosely-typed field mappings. Instead of
// threading map[string]any through profiling and curation, every field
// value is converted once into a tagged Value (null, int, float, string
// or bool) with explicit kind accessors. Strings are interned, which
// keeps large batches with repetitive categorical fields cheap.
//
// JSON encoding is the plain scalar form: a Value marshals to the bare
// JSON literal it represents, so profile and export artifacts stay
// readable by any JSON consumer. On decode, integral numbers are
// restored as KindInt and everything else as its natural kind.
package metadata
