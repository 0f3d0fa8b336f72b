package router

import (
	"github.com/ekovaleva/procurement-assist/internal/commodity"
	"github.com/ekovaleva/procurement-assist/internal/extraction"
	"github.com/ekovaleva/procurement-assist/internal/logger"
	"github.com/ekovaleva/procurement-assist/internal/middleware"
	"github.com/ekovaleva/procurement-assist/internal/request"
	"github.com/ekovaleva/procurement-assist/internal/suggest"
	"github.com/ekovaleva/procurement-assist/internal/user"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	userH *user.Handler,
	requestH *request.Handler,
	commodityH *commodity.Handler,
	extractionH *extraction.Handler,
	suggestH *suggest.Handler,
	jwtSecret []byte,
	authEnabled bool,
	userRepo user.UserRepository,
) chi.Router {
	r := chi.NewRouter()

	r.Use(logger.WithLogging)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.GzipHandler)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", userH.Register)
		r.Post("/login", userH.Login)
	})

	r.Group(func(r chi.Router) {
		if authEnabled {
			r.Use(middleware.JWTMiddleware(jwtSecret, userRepo))
		}

		r.Get("/api/commodity-groups", commodityH.ListGroups)
		r.Post("/api/suggest-commodity-group", suggestH.SuggestCommodityGroup)
		r.Post("/api/extract-document", extractionH.ExtractDocument)

		r.Post("/api/requests", requestH.CreateRequest)
		r.Get("/api/requests", requestH.ListRequests)
		r.Get("/api/requests/{id}", requestH.GetRequest)
		r.Patch("/api/requests/{id}/status", requestH.UpdateStatus)
	})

	return r
}
