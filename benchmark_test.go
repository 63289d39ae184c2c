package dropzone

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/gobeaver/dropzone/filevalidator"
)

func BenchmarkSubmitBatch(b *testing.B) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	configs := map[string]func(*Config){
		"append":   func(c *Config) {},
		"replace":  func(c *Config) { c.RetainAcrossBatches = false },
		"previews": func(c *Config) { c.GeneratePreviews = true; c.RetainAcrossBatches = false },
		"limited":  func(c *Config) { c.Concurrency = 2; c.RetainAcrossBatches = false },
	}

	for _, size := range []int{1, 10, 100} {
		batch := make([]*filevalidator.Candidate, size)
		for i := range batch {
			batch[i] = img(fmt.Sprintf("%d.png", i))
		}

		for name, modify := range configs {
			b.Run(fmt.Sprintf("%s/%d", name, size), func(b *testing.B) {
				cfg := DefaultConfig()
				modify(&cfg)
				dz, err := New(context.Background(), cfg, WithLogger(logger))
				if err != nil {
					b.Fatal(err)
				}

				ctx := context.Background()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := dz.SubmitBatch(ctx, batch); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
