// Package files provides file-related functionality organized into sub-packages.
//
// The root package holds the Inspector, which stats and hashes a source file
// before import so the run can record provenance (size, extension, SHA-256).
//
// Sub-packages:
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//
// # Usage
//
//	inspector := files.NewInspector(checksum.New())
//	info, err := inspector.Inspect("./sales.csv")
//
// The filesystem abstraction keeps the inspector and the tabular readers
// testable against in-memory files.
package files
