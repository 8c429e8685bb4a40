package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/api/version/", h.getServerVersion)

	// rotation rewrites every record; a request timeout would roll it back
	router.Route("/api/vault", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.withUnlockLimit)
			r.Post("/password", h.changePassword)
			r.Post("/rotation/resume", h.resumeRotation)
		})
		r.Get("/rotation", h.rotationProgress)

		r.Group(func(r chi.Router) {
			r.Use(h.withTimeout)
			r.Get("/status", h.status)
			r.Post("/setup", h.setup)
			r.With(h.withUnlockLimit).Post("/unlock", h.unlock)
			r.Post("/lock", h.lock)
			r.Post("/activity", h.touchActivity)
		})
	})

	router.Route("/api/records", func(r chi.Router) {
		r.Use(h.withTimeout)
		r.Post("/encrypt", h.encryptRecord)
		r.Post("/decrypt", h.decryptRecord)
		r.Post("/detect", h.detectRecord)
		r.Post("/migrate", h.migrateRecord)
	})

	router.Route("/api/passwords", func(r chi.Router) {
		r.Use(h.withTimeout)
		r.Get("/status", h.passwordsStatus)
		r.With(h.withUnlockLimit).Post("/unlock", h.unlockPasswords)
		r.Post("/lock", h.lockPasswords)
		r.Post("/activity", h.touchPasswords)
		r.Post("/encrypt", h.encryptPassword)
		r.Post("/decrypt", h.decryptPassword)
		r.Post("/decrypt-batch", h.decryptPasswords)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
