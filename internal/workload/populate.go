package workload

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/shardmap-go/pkg/shardmap"
)

// Populate inserts every key into m from workers goroutines. Worker w owns
// the keys at indexes congruent to w modulo workers and is recorded as the
// creator of the entries it inserts. It returns the number of fresh
// insertions.
func Populate(ctx context.Context, m *shardmap.Map[string, *Record], keys []string, workers int) (int, error) {
	workers = max(1, workers)
	inserted := make([]int, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for n, i := 0, w; i < len(keys); n, i = n+1, i+workers {
				if n%1024 == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				key := keys[i]
				_, fresh, err := m.TryEmplace(key, func() (*Record, error) {
					return &Record{Key: key, Worker: w}, nil
				})
				if err != nil {
					return err
				}
				if fresh {
					inserted[w]++
				}
			}
			return nil
		})
	}
	err := g.Wait()

	total := 0
	for _, n := range inserted {
		total += n
	}
	return total, err
}
