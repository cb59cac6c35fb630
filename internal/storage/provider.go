// Package storage defines the read-only content directory abstraction.
package storage

// Provider is the interface the loader reads source files through. The
// document set is immutable for the session, so the surface is read-only.
type Provider interface {
	// List returns the relative paths of every .md file under the content
	// root, in deterministic (lexical walk) order.
	List() ([]string, error)
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
}
