package compress

import (
	"fmt"
	"testing"
)

// Benchmark all codecs against matrix-shaped text at the payload sizes the
// converter actually sees.
func BenchmarkCodecs_Compress(b *testing.B) {
	rowCounts := []int{100, 1000, 10000}

	for name, codec := range getAllCodecs() {
		for _, rows := range rowCounts {
			data := sampleNexus(rows)

			b.Run(fmt.Sprintf("%s/%d_rows", name, rows), func(b *testing.B) {
				b.SetBytes(int64(len(data)))
				b.ResetTimer()

				for b.Loop() {
					_, err := codec.Compress(data)
					if err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkCodecs_Decompress(b *testing.B) {
	rowCounts := []int{100, 1000, 10000}

	for name, codec := range getAllCodecs() {
		for _, rows := range rowCounts {
			compressed, err := codec.Compress(sampleNexus(rows))
			if err != nil {
				b.Fatal(err)
			}

			b.Run(fmt.Sprintf("%s/%d_rows", name, rows), func(b *testing.B) {
				b.SetBytes(int64(len(compressed)))
				b.ResetTimer()

				for b.Loop() {
					_, err := codec.Decompress(compressed)
					if err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
