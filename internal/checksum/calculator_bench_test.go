package checksum

import (
	"bytes"
	"strings"
	"testing"
)

// BenchmarkCalculateReader compares the two algorithms on a hardware-sized file
func BenchmarkCalculateReader(b *testing.B) {
	content := []byte(strings.Repeat("<Module Name=\"DI1\" Type=\"X20DI9371\" Version=\"1.0.0.0\" />\n", 2000))

	for _, calc := range calculators() {
		b.Run(calc.Name(), func(b *testing.B) {
			b.SetBytes(int64(len(content)))
			for i := 0; i < b.N; i++ {
				if _, err := calc.CalculateReader(bytes.NewReader(content)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
