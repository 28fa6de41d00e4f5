// Package server exposes the catalog and request resolution over HTTP.
//
// Routes:
//
//	GET  /metadata   catalog document (JSON)
//	GET  /graph      version binding graph (DOT, or SVG with ?format=svg)
//	POST /describe   project request (JSON) to build descriptor (JSON)
//	POST /refresh    refresh the catalog from the version feed
//	GET  /healthz    liveness probe
//	GET  /metrics    Prometheus metrics
//
// Rejected requests answer 400 with {"code": ..., "message": ...}. Every
// response carries an X-Request-ID header.
package server
