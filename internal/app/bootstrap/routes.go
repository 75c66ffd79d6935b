// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	approvedfeature "github.com/spondon-bd/spondon/internal/app/features/approved"
	donorsfeature "github.com/spondon-bd/spondon/internal/app/features/donors"
	healthfeature "github.com/spondon-bd/spondon/internal/app/features/health"
	homefeature "github.com/spondon-bd/spondon/internal/app/features/home"
	requestsfeature "github.com/spondon-bd/spondon/internal/app/features/requests"
	usersfeature "github.com/spondon-bd/spondon/internal/app/features/users"
	volunteersfeature "github.com/spondon-bd/spondon/internal/app/features/volunteers"
	"github.com/spondon-bd/spondon/internal/app/system/jsonutil"
	"github.com/spondon-bd/spondon/internal/app/system/requestlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Every feature shares the one Mongo
// database handle from deps.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestlog.Middleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestlog.Header},
		ExposedHeaders: []string{requestlog.Header},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonutil.Error(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonutil.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	usersHandler := usersfeature.NewHandler(db, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	donorsHandler := donorsfeature.NewHandler(db, logger)
	r.Mount("/active-donors", donorsfeature.Routes(donorsHandler))

	volunteersHandler := volunteersfeature.NewHandler(db, logger)
	r.Mount("/volunteers", volunteersfeature.Routes(volunteersHandler))

	// Pending requests and the approval workflow
	requestsHandler := requestsfeature.NewHandler(db, logger)
	r.Mount("/requests", requestsfeature.Routes(requestsHandler))

	approvedHandler := approvedfeature.NewHandler(db, logger)
	r.Mount("/approved-requests", approvedfeature.Routes(approvedHandler))

	return r, nil
}
