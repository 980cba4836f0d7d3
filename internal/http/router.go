package http

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ousmanseid/job-site-sub000/internal/domain/user"
	"github.com/ousmanseid/job-site-sub000/internal/http/handlers"
	httpmw "github.com/ousmanseid/job-site-sub000/internal/http/middleware"
)

type RouterDependencies struct {
	JobHandler          *handlers.JobHandler
	ApplicationHandler  *handlers.ApplicationHandler
	CompanyHandler      *handlers.CompanyHandler
	AdminHandler        *handlers.AdminHandler
	CVHandler           *handlers.CVHandler
	NotificationHandler *handlers.NotificationHandler
	AuthMiddleware      *httpmw.AuthMiddleware
	Logger              *zap.Logger
	RequestTimeout      time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 8 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Timeout(r.deps.RequestTimeout))
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
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/"):
			r.deps.JobHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/jobs") || strings.HasPrefix(path, "/employer") || strings.HasPrefix(path, "/admin") ||
			strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/company") ||
			strings.HasPrefix(path, "/cv") || strings.HasPrefix(path, "/notifications") {
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
	jobseeker := httpmw.RequireRole(user.RoleJobSeeker)
	employer := httpmw.RequireRole(user.RoleEmployer)
	admin := httpmw.RequireRole(user.RoleAdmin)

	switch {
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/apply/"):
		jobseeker(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/my-applications":
		jobseeker(http.HandlerFunc(r.deps.ApplicationHandler.ListMine)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/company":
		employer(http.HandlerFunc(r.deps.ApplicationHandler.ListCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/job/"):
		employer(http.HandlerFunc(r.deps.ApplicationHandler.ListByJob)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Get(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		employer(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/"):
		jobseeker(http.HandlerFunc(r.deps.ApplicationHandler.Withdraw)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/jobs":
		employer(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/jobs/"):
		r.deps.JobHandler.Delete(w, req)
		return
	case req.Method == http.MethodGet && path == "/employer/jobs":
		employer(http.HandlerFunc(r.deps.JobHandler.ListByEmployer)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/employer/jobs/"):
		r.deps.JobHandler.GetOwned(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/employer/jobs/") && strings.HasSuffix(path, "/status"):
		employer(http.HandlerFunc(r.deps.JobHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/employer/jobs/"):
		employer(http.HandlerFunc(r.deps.JobHandler.Update)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && strings.HasPrefix(path, "/admin/jobs/") && strings.HasSuffix(path, "/approve"):
		admin(http.HandlerFunc(r.deps.AdminHandler.ApproveJob)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/admin/jobs/") && strings.HasSuffix(path, "/reject"):
		admin(http.HandlerFunc(r.deps.AdminHandler.RejectJob)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/admin/users/") && strings.HasSuffix(path, "/approve"):
		admin(http.HandlerFunc(r.deps.AdminHandler.ApproveUser)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/admin/users/") && strings.HasSuffix(path, "/deactivate"):
		admin(http.HandlerFunc(r.deps.AdminHandler.DeactivateUser)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/admin/users/") && strings.HasSuffix(path, "/activate"):
		admin(http.HandlerFunc(r.deps.AdminHandler.ActivateUser)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/admin/users/"):
		admin(http.HandlerFunc(r.deps.AdminHandler.DeleteUser)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/users":
		admin(http.HandlerFunc(r.deps.AdminHandler.ListUsers)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/company/profile":
		employer(http.HandlerFunc(r.deps.CompanyHandler.GetProfile)).ServeHTTP(w, req)
		return
	case (req.Method == http.MethodPost || req.Method == http.MethodPut) && path == "/company/profile":
		employer(http.HandlerFunc(r.deps.CompanyHandler.UpsertProfile)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/cv":
		jobseeker(http.HandlerFunc(r.deps.CVHandler.List)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/cv":
		jobseeker(http.HandlerFunc(r.deps.CVHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/cv/upload":
		jobseeker(http.HandlerFunc(r.deps.CVHandler.Upload)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/cv/"):
		jobseeker(http.HandlerFunc(r.deps.CVHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/cv/"):
		jobseeker(http.HandlerFunc(r.deps.CVHandler.Delete)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/notifications":
		r.deps.NotificationHandler.List(w, req)
		return
	case req.Method == http.MethodGet && path == "/notifications/unread/count":
		r.deps.NotificationHandler.UnreadCount(w, req)
		return
	case req.Method == http.MethodPost && path == "/notifications/read-all":
		r.deps.NotificationHandler.MarkAllRead(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/notifications/") && strings.HasSuffix(path, "/read"):
		r.deps.NotificationHandler.MarkRead(w, req)
		return
	}

	http.NotFound(w, req)
}
