package http

import (
	"net/http"
	"strings"
	"time"

	"crewline/internal/domain/user"
	"crewline/internal/http/handlers"
	"crewline/internal/http/metrics"
	httpmw "crewline/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler           *handlers.AuthHandler
	ApplicationHandler    *handlers.ApplicationHandler
	EventHandler          *handlers.EventHandler
	TransportationHandler *handlers.TransportationHandler
	AuthMiddleware        *httpmw.AuthMiddleware
	Metrics               *metrics.Collector
	RequestTimeout        time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.Metrics.Handler().ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		}

		if strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/events") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	applicant := httpmw.RequireRole(user.RoleHost, user.RoleTeamLeader)
	admin := httpmw.RequireRole(user.RoleAdmin)
	anyStaff := httpmw.RequireRole(user.RoleHost, user.RoleTeamLeader, user.RoleAdmin)

	switch {
	case req.Method == http.MethodPost && path == "/applications":
		applicant(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		anyStaff(http.HandlerFunc(r.deps.ApplicationHandler.List)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/applications/") && strings.Count(path, "/") == 2:
		admin(http.HandlerFunc(r.deps.ApplicationHandler.Decide)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/transportation"):
		anyStaff(http.HandlerFunc(r.deps.TransportationHandler.Get)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/transportation"):
		admin(http.HandlerFunc(r.deps.TransportationHandler.Save)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/transportation"):
		admin(http.HandlerFunc(r.deps.TransportationHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/notes"):
		applicant(http.HandlerFunc(r.deps.ApplicationHandler.UpdateNotes)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/") && strings.Count(path, "/") == 2:
		anyStaff(http.HandlerFunc(r.deps.ApplicationHandler.Get)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/") && strings.Count(path, "/") == 2:
		applicant(http.HandlerFunc(r.deps.ApplicationHandler.Withdraw)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/events":
		admin(http.HandlerFunc(r.deps.EventHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/events":
		anyStaff(http.HandlerFunc(r.deps.EventHandler.List)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/events/") && strings.Count(path, "/") == 2:
		anyStaff(http.HandlerFunc(r.deps.EventHandler.Get)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
