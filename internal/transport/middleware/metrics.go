package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type httpRecorder interface {
	RecordHTTP(method, route string, status int, d time.Duration)
}

// Metrics records request counts and latency labelled by the mux route
// template, so path parameters do not explode label cardinality. Install it
// with Router.Use so the matched route is available.
func Metrics(rec httpRecorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			rec.RecordHTTP(r.Method, routeTemplate(r), sw.status, time.Since(start))
		})
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unmatched"
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return "unmatched"
	}
	return tpl
}
