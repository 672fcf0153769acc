// Package walker traverses a repository tree and turns accepted files
// into digest records.
//
// The walk visits entries in lexical order per directory, so output is
// reproducible across runs on an unchanged tree. For each candidate the
// walker applies the exclusion matcher (a matching directory skips the
// whole subtree), then classifies, extracts metadata, and chunks the
// content. A configurable file ceiling bounds the walk; hitting it is a
// normal termination, not an error.
package walker
