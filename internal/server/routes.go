package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"itemcatalog/internal/handlers"
	"itemcatalog/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	pm := middlewares.NewPrometheusMiddleware()
	r.Use(pm.Instrument)
	r.Use(middlewares.RateLimit)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	s.registerCatalogRoutes(r)
	s.registerAuthRoutes(r)
	s.registerAPIRoutes(r)

	return r
}

func (s *Server) registerCatalogRoutes(r *mux.Router) {
	cth := handlers.NewCategoryHandler(s.categoryService, s.itemService, s.sessions, s.views)
	ith := handlers.NewItemHandler(s.itemService, s.categoryService, s.userService, s.sessions, s.views)

	r.HandleFunc("/", cth.Home).Methods("GET")
	r.HandleFunc("/catalog/", cth.Home).Methods("GET")
	r.HandleFunc("/catalog/items/", cth.Home).Methods("GET")

	r.HandleFunc("/catalog/category/new/", cth.NewCategory).Methods("GET", "POST")
	r.HandleFunc("/catalog/category/{id:[0-9]+}/edit/", cth.EditCategory).Methods("GET", "POST")
	r.HandleFunc("/catalog/category/{id:[0-9]+}/delete/", cth.DeleteCategory).Methods("GET", "POST")
	r.HandleFunc("/catalog/category/{id:[0-9]+}/items/", cth.ItemsInCategory).Methods("GET")

	r.HandleFunc("/catalog/item/new/", ith.NewItem).Methods("GET", "POST")
	r.HandleFunc("/catalog/category/{id:[0-9]+}/item/new/", ith.NewItemInCategory).Methods("GET", "POST")
	r.HandleFunc("/catalog/item/{id:[0-9]+}/", ith.ViewItem).Methods("GET")
	r.HandleFunc("/catalog/item/{id:[0-9]+}/edit/", ith.EditItem).Methods("GET", "POST")
	r.HandleFunc("/catalog/item/{id:[0-9]+}/delete/", ith.DeleteItem).Methods("GET", "POST")
}

func (s *Server) registerAuthRoutes(r *mux.Router) {
	ah := handlers.NewAuthHandler(s.authService, s.sessions, s.views)

	r.HandleFunc("/login/", ah.LoginPage).Methods("GET")
	r.HandleFunc("/gconnect", ah.GConnect).Methods("POST")
	r.HandleFunc("/logout", ah.Logout).Methods("GET")
}

func (s *Server) registerAPIRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middlewares.CorsMiddleware)

	ah := handlers.NewAPIHandler(s.itemService, s.categoryService)
	api.HandleFunc("/catalog.json", ah.CatalogJSON).Methods("GET", "OPTIONS")
	api.HandleFunc("/categories/{cid:[0-9]+}/item/{iid:[0-9]+}/JSON", ah.ItemJSON).Methods("GET", "OPTIONS")
	api.HandleFunc("/categories/JSON", ah.CategoriesJSON).Methods("GET", "OPTIONS")
}
