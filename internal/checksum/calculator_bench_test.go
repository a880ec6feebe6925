package checksum

import (
	"bytes"
	"strings"
	"testing"
)

// BenchmarkCalculateRaw benchmarks in-memory checksum calculation
func BenchmarkCalculateRaw(b *testing.B) {
	calculator := New()
	content := []byte(strings.Repeat("42,alice,2024-01-02,3.14\n", 1000))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calculator.CalculateRaw(content)
	}
}

// BenchmarkCalculateReader benchmarks streaming checksum calculation
func BenchmarkCalculateReader(b *testing.B) {
	calculator := New()
	content := []byte(strings.Repeat("42,alice,2024-01-02,3.14\n", 1000))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := calculator.CalculateReader(bytes.NewReader(content)); err != nil {
			b.Fatal(err)
		}
	}
}
