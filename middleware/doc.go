/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Request Metrics

Record Prometheus request counts and latency per route:

	mux.HandleFunc("GET /takes", middleware.WithMetrics("/takes", m, handler))

# Identity

Resolve the acting friend-group member from the X-User-Id header:

	mux.HandleFunc("POST /takes", middleware.RequireIdentity(func(w http.ResponseWriter, r *http.Request, userID string) {
		...
	}))

A missing or unknown name yields 401 with error code "identity_required".

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "message")

Parse JSON request bodies:

	var req models.AddTakeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid JSON")
		return
	}
*/
package middleware
