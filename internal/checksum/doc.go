// Package checksum provides source file content hashing.
//
// Every import records the SHA-256 of the exact bytes it read, giving the
// audit log a stable identity for the source file independent of its path or
// modification time.
//
// # Example Usage
//
//	calculator := checksum.New()
//	sum := calculator.CalculateRaw(fileContent)
//
// Large files are hashed without buffering the whole content:
//
//	sum, err := calculator.CalculateReader(file)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
