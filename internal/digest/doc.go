// Package digest defines the shared schema for a repository digest.
//
// The types here are plain data produced by the walker and consumed by the
// renderer. They carry no behavior beyond construction helpers and are never
// mutated after the walk completes; every output format renders the same
// logical fields.
package digest
