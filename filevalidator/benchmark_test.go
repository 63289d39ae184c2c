package filevalidator

import (
	"context"
	"fmt"
	"testing"
)

func BenchmarkValidateOne(b *testing.B) {
	ctx := context.Background()
	v := NewBuilder().Accept("image/*").MaxSize(10 * MB).Build()
	c := sized("photo.jpg", "image/jpeg", 1*MB)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.ValidateOne(ctx, c)
	}
}

func BenchmarkValidateFiles(b *testing.B) {
	ctx := context.Background()
	p, _ := stubPreviewer("data:image/png;base64,", nil)

	for _, size := range []int{1, 10, 100} {
		batch := make([]*Candidate, size)
		for i := range batch {
			batch[i] = sized(fmt.Sprintf("%d.png", i), "image/png", 1024)
		}

		for _, concurrency := range []int{0, 4} {
			v := New(Constraints{Accept: "*", GeneratePreviews: true, Concurrency: concurrency}, p)
			b.Run(fmt.Sprintf("files=%d/limit=%d", size, concurrency), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					v.ValidateFiles(ctx, batch)
				}
			})
		}
	}
}

func BenchmarkMatchAccept(b *testing.B) {
	patterns := []string{"*", "image/*", "application/pdf"}
	for i := 0; i < b.N; i++ {
		for _, p := range patterns {
			MatchAccept(p, "image/png")
		}
	}
}
