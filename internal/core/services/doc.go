// Package services implements the core business logic: document
// ingestion, retrieval-augmented question answering, and document
// record management. Services depend only on driven port interfaces;
// adapters are injected at construction.
package services
