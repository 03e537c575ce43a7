// Package benchmark compares sharded map configurations under realistic
// string keys.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Compare hashers or shard counts across runs:
//
//	go test -bench=BenchmarkFind -benchmem -count=5 ./internal/tests/benchmark/... | tee find.txt
//	benchstat old.txt new.txt
package benchmark
