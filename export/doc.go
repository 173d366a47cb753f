// Package export defines the bounded edge-ready artifact the curator
// produces and the writer that serializes it.
//
// An Entry is the projection of one record onto a key-field allow-list,
// plus its full vector and document. Entries marshal flat: the projected
// fields sit at the top level of the JSON object next to "vector" and
// "document", so on-device consumers read them without any wrapper.
package export
