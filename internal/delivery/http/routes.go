package http

import (
	"net/http"

	wsDelivery "elitepainters/internal/delivery/websocket"
	"elitepainters/internal/entity"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups everything MapHttpRoutes mounts.
type Handlers struct {
	Http      *HttpHandler
	Auth      *AuthHandler
	Quote     *QuoteHandler
	Employee  *EmployeeHandler
	Gallery   *GalleryHandler
	Dashboard *DashboardHandler
	Websocket *wsDelivery.WebsocketHandler

	// Uploads serves locally stored images; nil when images live in S3.
	Uploads http.Handler
}

func NewRouter(logger zerolog.Logger, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(Metrics)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	return r
}

func MapHttpRoutes(r *chi.Mux, h Handlers, authMiddleware *AuthMiddleware) {
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Http.Health)
	r.Get("/ws", h.Websocket.HandleWebSocket)
	if h.Uploads != nil {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", h.Uploads))
	}

	// Public routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/admin/register", h.Auth.Register(entity.RoleAdmin))
		r.Post("/admin/login", h.Auth.Login(entity.RoleAdmin))
		r.Post("/customer/register", h.Auth.Register(entity.RoleCustomer))
		r.Post("/customer/login", h.Auth.Login(entity.RoleCustomer))
	})
	r.Post("/quote", h.Quote.Create)
	r.Get("/gallery", h.Gallery.Index)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/chat", func(r chi.Router) {
			r.Get("/unread", h.Http.UnreadCount)
			r.Post("/messages", h.Http.SendMessage)
			r.Get("/{customerId}/messages", h.Http.GetMessages)
			r.Post("/{customerId}/read", h.Http.MarkRead)
		})

		r.With(RequireRole(entity.RoleCustomer)).Get("/customer/dashboard", h.Dashboard.Customer)

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireRole(entity.RoleAdmin))

			r.Get("/dashboard", h.Dashboard.Admin)

			r.Route("/quotes", func(r chi.Router) {
				r.Get("/", h.Quote.Index)
				r.Get("/count", h.Quote.Count)
				r.Delete("/new", h.Quote.ResetNew)
				r.Delete("/{id}", h.Quote.Delete)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.Index)
				r.Post("/", h.Employee.Create)
				r.Get("/{id}", h.Employee.Get)
				r.Put("/{id}", h.Employee.Update)
				r.Delete("/{id}", h.Employee.Delete)
				r.Post("/{id}/activate", h.Employee.SetActive(true))
				r.Post("/{id}/deactivate", h.Employee.SetActive(false))
			})

			r.Route("/gallery", func(r chi.Router) {
				r.Post("/", h.Gallery.Upload)
				r.Delete("/{id}", h.Gallery.Delete)
			})
		})
	})
}
