package server

import "time"

const (
	readHeaderTimeout = 5 * time.Second
	// Multipart uploads up to UPLOADS_MAX_BYTES are read inside this window.
	readTimeout  = 30 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout is a var so tests can shorten it.
var shutdownTimeout = 10 * time.Second
