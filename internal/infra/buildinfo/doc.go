// Package buildinfo exposes version information for the shardmap-bench
// binary.
//
// Release builds inject values via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/shardmap-go/internal/infra/buildinfo.Version=v1.0.0 \
//	  -X github.com/yndnr/shardmap-go/internal/infra/buildinfo.Commit=abc123"
//
// When nothing is injected, the module version and VCS revision recorded by
// the Go toolchain are used instead.
package buildinfo
