// cmd/garnish/server.go
package main

import "net/http"

// serveInspector mounts the inspector.Server at /steps and blocks until
// the HTTP server exits (or a client triggers a listen error). Adapted
// from the teacher's internal/network.WebSocketServer.Serve, which built
// an *http.Server around a single upgrade handler the same way.
func serveInspector(addr string, handler http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/steps", handler)
	return http.ListenAndServe(addr, mux)
}
