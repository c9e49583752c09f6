//go:build bench

package mdcard

import (
	"context"
	"fmt"
	"testing"

	"github.com/jaydendev/mdcard/internal/assets"
)

// BenchmarkConverterPool_AcquireRelease measures pool hand-off under
// contention, with converters that never start a browser.
func BenchmarkConverterPool_AcquireRelease(b *testing.B) {
	for _, size := range []int{1, 4, MaxPoolSize} {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			pool := NewConverterPool(size)
			pool.newConverter = func(opts ...Option) (*Converter, error) {
				return NewConverter(append(opts, withImageConverter(&mockImageConverter{}))...)
			}
			defer pool.Close()

			ctx := context.Background()
			b.ReportAllocs()
			b.ResetTimer()

			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					c, err := pool.Acquire(ctx)
					if err != nil {
						b.Error(err)
						return
					}
					pool.Release(c)
				}
			})
		})
	}
}

// BenchmarkBuildThemeCSS benchmarks theme variable generation per embedded theme.
func BenchmarkBuildThemeCSS(b *testing.B) {
	loader := assets.NewEmbeddedLoader()
	names, err := loader.ListThemes()
	if err != nil {
		b.Fatal(err)
	}

	for _, name := range names {
		theme, err := loader.LoadTheme(name)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = buildThemeCSS(theme)
			}
		})
	}
}
