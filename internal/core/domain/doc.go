// Package domain defines the core business entities for StudyKit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: metadata for an ingested document
//   - Chunk: a bounded, overlapping slice of a document's text
//   - AnswerResult: the outcome of a grounded question-answering run
//   - SearchResult: a scored retrieval hit
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
