// Package pipeline runs the complete generation flow: chain assembly →
// field synthesis → export. CLI and API share this package so both
// entry points behave identically, including caching.
//
// # Stages
//
//  1. Chain: build the segment chain into the river mesh (sequential,
//     every segment depends on its predecessor's endpoints).
//  2. Fields: synthesize depth and current over the finished mesh. The
//     two syntheses are independent and run concurrently.
//  3. Export: validate shapes and write the run folder via the
//     configured exporter.
//
// Seeded runs are cached by parameter hash: generation is deterministic,
// so a cache hit reproduces the exact dataset without geometry work.
// Unseeded runs draw a fresh seed every time and bypass the cache.
package pipeline

import (
	"time"

	"github.com/nikpau/sr-gen/pkg/config"
	"github.com/nikpau/sr-gen/pkg/export"
)

// Options configures one pipeline execution. The struct serializes to
// JSON so the HTTP API can accept it directly.
type Options struct {
	// Params are the generation parameters.
	Params config.Parameters `json:"params"`

	// Refresh bypasses the cache and regenerates even on a hit.
	Refresh bool `json:"refresh,omitempty"`

	// SkipExport stops after field synthesis, producing no run folder.
	// The API uses this to return data inline.
	SkipExport bool `json:"skip_export,omitempty"`
}

// Validate checks the options before execution.
func (o *Options) Validate() error {
	return o.Params.Validate()
}

// Stats records per-stage timings and output dimensions.
type Stats struct {
	ChainTime  time.Duration `json:"chain_time"`
	FieldTime  time.Duration `json:"field_time"`
	ExportTime time.Duration `json:"export_time"`
	Rows       int           `json:"rows"`
	Cols       int           `json:"cols"`
	Points     int           `json:"points"`
}

// CacheInfo reports whether the run was served from cache.
type CacheInfo struct {
	Hit bool `json:"hit"`
}

// Result is the outcome of a pipeline execution.
type Result struct {
	// Dataset holds the mesh and fields of the run.
	Dataset *export.Dataset

	// Dir is the run folder path, empty when export was skipped.
	Dir string

	// Seed is the seed the run actually used. For unseeded parameters
	// this is the freshly drawn one.
	Seed uint64

	Stats     Stats
	CacheInfo CacheInfo
}
