package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agencydesk/agencydesk-backend/api/controllers"
	"github.com/agencydesk/agencydesk-backend/api/middleware"
	"github.com/agencydesk/agencydesk-backend/internal/auth"
	"github.com/agencydesk/agencydesk-backend/internal/catalog"
	"github.com/agencydesk/agencydesk-backend/internal/employees"
	"github.com/agencydesk/agencydesk-backend/internal/members"
	"github.com/agencydesk/agencydesk-backend/internal/statistics"
	"github.com/agencydesk/agencydesk-backend/internal/subscriptions"
	"github.com/agencydesk/agencydesk-backend/internal/tasks"
	"github.com/agencydesk/agencydesk-backend/pkg/auth/session"
	"github.com/agencydesk/agencydesk-backend/pkg/config"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	"github.com/agencydesk/agencydesk-backend/pkg/logger"
)

// Deps bundles the services the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	SessionChecker session.AccessSessionChecker
	Auth           auth.Service
	Members        members.Service
	Subscriptions  subscriptions.Service
	Tasks          tasks.Service
	Employees      employees.Service
	Catalog        catalog.Service
	Statistics     statistics.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		// Employees can work their own task queue.
		r.Get("/tasks/buckets", controllers.TaskBuckets(deps.Tasks, logg))
		r.Post("/tasks/{taskId}/complete", controllers.TaskComplete(deps.Tasks, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Route("/folders", func(r chi.Router) {
				r.Post("/", controllers.FolderCreate(deps.Members, logg))
				r.Get("/", controllers.FolderList(deps.Members, logg))
				r.Post("/export", controllers.FolderExportAll(deps.Members, logg))
				r.Route("/{folderId}", func(r chi.Router) {
					r.Get("/", controllers.FolderGet(deps.Members, logg))
					r.Put("/", controllers.FolderUpdate(deps.Members, logg))
					r.Delete("/", controllers.FolderDelete(deps.Members, logg))
					r.Post("/export", controllers.FolderExport(deps.Members, logg))
					r.Post("/contacts", controllers.ContactCreate(deps.Members, logg))
					r.Put("/contacts/{contactId}", controllers.ContactUpdate(deps.Members, logg))
					r.Delete("/contacts/{contactId}", controllers.ContactDelete(deps.Members, logg))
				})
			})

			r.Route("/subscriptions", func(r chi.Router) {
				r.Post("/", controllers.SubscriptionCreate(deps.Subscriptions, logg))
				r.Get("/", controllers.SubscriptionList(deps.Subscriptions, logg))
				r.Get("/expiring", controllers.SubscriptionExpiring(deps.Subscriptions, logg))
				r.Get("/recycle", controllers.SubscriptionRecycleList(deps.Subscriptions, logg))
				r.Post("/export", controllers.SubscriptionExport(deps.Subscriptions, logg))
				r.Route("/{subscriptionId}", func(r chi.Router) {
					r.Get("/", controllers.SubscriptionGet(deps.Subscriptions, logg))
					r.Put("/", controllers.SubscriptionUpdate(deps.Subscriptions, logg))
					r.Delete("/", controllers.SubscriptionDelete(deps.Subscriptions, logg))
					r.Post("/restore", controllers.SubscriptionRestore(deps.Subscriptions, logg))
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", controllers.TaskCreate(deps.Tasks, logg))
				r.Put("/{taskId}", controllers.TaskUpdate(deps.Tasks, logg))
				r.Delete("/{taskId}", controllers.TaskDelete(deps.Tasks, logg))
			})

			r.Route("/clients/{clientId}/tasks", func(r chi.Router) {
				r.Get("/", controllers.TaskClientHistory(deps.Tasks, logg))
				r.Post("/export", controllers.TaskClientSheetExport(deps.Tasks, logg))
			})

			r.Route("/employees", func(r chi.Router) {
				r.Post("/", controllers.EmployeeCreate(deps.Employees, logg))
				r.Get("/", controllers.EmployeeList(deps.Employees, logg))
				r.Route("/{employeeId}", func(r chi.Router) {
					r.Get("/", controllers.EmployeeGet(deps.Employees, logg))
					r.Put("/", controllers.EmployeeUpdate(deps.Employees, logg))
					r.Delete("/", controllers.EmployeeDelete(deps.Employees, logg))
					r.Put("/performance", controllers.EmployeeSetPerformance(deps.Employees, logg))
					r.Post("/warnings", controllers.EmployeeAddWarning(deps.Employees, logg))
					r.Delete("/warnings", controllers.EmployeeResetWarnings(deps.Employees, logg))
					r.Put("/credentials", controllers.EmployeeUpdateCredentials(deps.Employees, logg))
				})
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Post("/prices", controllers.CatalogCreate(deps.Catalog, logg))
				r.Get("/prices", controllers.CatalogList(deps.Catalog, logg))
				r.Get("/prices/lookup", controllers.CatalogLookup(deps.Catalog, logg))
				r.Put("/prices/{priceId}", controllers.CatalogUpdate(deps.Catalog, logg))
				r.Delete("/prices/{priceId}", controllers.CatalogDelete(deps.Catalog, logg))
				r.Get("/categories", controllers.CatalogCategories(deps.Catalog, logg))
			})

			r.Get("/statistics/overview", controllers.StatisticsOverview(deps.Statistics, logg))
		})
	})

	return r
}
