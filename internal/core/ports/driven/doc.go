// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EmbeddingService: converts text into fixed-length vectors
//   - VectorIndex: stores vectors and answers nearest-neighbour queries
//   - LLMService: generative model calls for answer composition
//   - DocumentStore: document metadata persistence
//   - ConfigStore: application configuration
//   - PostProcessor: document content processing (chunking)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
