// Package timeouts defines shared timeout constants used across the service.
package timeouts

import "time"

// UpstreamRequest caps a single request to the upstream catalog API when no
// explicit timeout is configured.
const UpstreamRequest = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// OTelShutdown limits how long the trace exporter may flush on exit.
const OTelShutdown = 5 * time.Second
