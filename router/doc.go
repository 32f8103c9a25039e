/*
Package router wires the HTTP routes to their handlers.

Routes use Go 1.22 method patterns on http.ServeMux:

	mux.HandleFunc("GET /takes/{id}/votes", ...)

Every route is wrapped with request logging and Prometheus metrics.
Write routes additionally require a roster identity via
middleware.RequireIdentity; take deletion checks X-Admin-Key in the
handler itself.
*/
package router
