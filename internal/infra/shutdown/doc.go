// Package shutdown coordinates a graceful stop of the benchmark.
//
// A Handler turns SIGINT/SIGTERM into a cancelled context so running
// workers can drain, then runs registered cleanup hooks in reverse order of
// registration under a bounded timeout:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	ctx, stop := h.NotifyContext(context.Background())
//	defer stop()
//	h.OnShutdown(func(ctx context.Context) error { return flush(ctx) })
//	...
//	err := h.Shutdown()
package shutdown
