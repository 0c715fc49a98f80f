// Package schema implements the generic object model behind mlbox
// configuration documents: typed schema objects built from untyped
// primitive trees (maps, sequences, scalars), with declared defaults,
// shape validation, and recursive layer merging.
//
// # Overview
//
// A schema type is declared once as an immutable Spec: an ordered table of
// named field descriptors. Concrete types embed Standard (or ListOf /
// DictOf for homogeneous collections) and bind their Spec at construction.
// Instances are then driven through three operations:
//
//   - Default: resolve every declared field to its declared default
//   - FromPrimitive: build the typed tree from a deserialized document
//   - Merge: fold an overlay instance of the same type into the receiver
//
// # Merge semantics
//
// Merge is destructive on the receiver and never touches the overlay.
// Nested schema objects merge recursively; sequence values concatenate
// (receiver entries first); mapping values merge key by key, recursing
// where both sides hold mappings; non-null scalars from the overlay
// replace the receiver's value; null overlay values leave the receiver
// untouched.
//
// # Embedding
//
// An ObjectField marked Embedded converts from the whole parent document
// rather than a sub-key, and its declared fields are hoisted onto the
// parent for every name the parent does not declare itself. Hoisting is
// one level deep, runs once at resolution time, and copies values rather
// than sharing them.
package schema
