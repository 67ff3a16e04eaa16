// internal/app/system/timeouts/timeouts.go

// Package timeouts provides centralized timeout values for handler
// operations. Using shared values keeps context deadlines consistent
// across features and easy to adjust in one place.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads or lookups
//   - Medium: list queries, moderate writes, multi-step reads
//   - Long: compound writes touching multiple documents
//
// Outbound directory gateway calls deliberately get no timeout here; they
// run on the request context so an external deadline, if any, is the
// caller's choice.
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for single-document reads.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and moderate writes.
func Medium() time.Duration { return medium }

// Long returns the timeout for compound writes.
func Long() time.Duration { return long }
