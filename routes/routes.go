package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/padelhub/padel-web/docs"
	"github.com/padelhub/padel-web/handlers"
	"github.com/padelhub/padel-web/middleware"
	"github.com/padelhub/padel-web/services"
	"github.com/padelhub/padel-web/session"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Tournament *handlers.TournamentHandler
	Team       *handlers.TeamHandler
	Board      *handlers.BoardHandler
	Result     *handlers.ResultHandler
	Standings  *handlers.StandingsHandler
	Public     *handlers.PublicHandler
	Admin      *handlers.AdminHandler
	WebSocket  *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, h Handlers, sessions *session.Manager, allowedOrigins []string) {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"}
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Return-To"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.Authenticate(sessions))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)
			r.With(middleware.RequireSession(sessions)).Get("/me", h.Auth.Me)
		})

		r.Get("/public/tournaments/{tournamentID}", h.Public.View)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessions))

			r.Route("/tournaments", func(r chi.Router) {
				r.Get("/", h.Tournament.List)
				r.Post("/", h.Tournament.Create)

				r.Route("/{tournamentID}", func(r chi.Router) {
					r.Get("/", h.Tournament.Get)
					r.Patch("/", h.Tournament.Update)
					r.Delete("/", h.Tournament.Delete)
					r.Get("/status", h.Tournament.Status)
					r.Post("/start", h.Tournament.Transition(services.ActionStart))
					r.Post("/finish-groups", h.Tournament.Transition(services.ActionFinishGroups))
					r.Post("/finish", h.Tournament.Transition(services.ActionFinish))

					r.Get("/teams", h.Team.List)
					r.Post("/teams", h.Team.Create)
					r.Delete("/teams/{teamID}", h.Team.Delete)

					r.Get("/groups", h.Tournament.Groups)
					r.Post("/groups/generate", h.Tournament.GenerateGroups)
					r.Post("/groups/matches", h.Tournament.GenerateGroupMatches)

					r.Get("/board", h.Board.Board)
					r.Post("/board/drop", h.Board.Drop)
					r.Get("/matches/{matchID}/result", h.Result.Form)
					r.Post("/matches/{matchID}/result", h.Result.Submit)

					r.Get("/standings", h.Standings.Standings)
					r.Get("/fixtures", h.Standings.Fixtures)
					r.Get("/bracket", h.Standings.Bracket)
					r.Post("/playoffs/generate", h.Standings.GeneratePlayoffs)
				})
			})

			r.Post("/matches/{matchID}/start", h.Board.StartMatch)

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/accounts", h.Admin.ListAccounts)
				r.Post("/accounts", h.Admin.CreateAccount)
				r.Patch("/accounts/{accountID}", h.Admin.UpdateAccount)

				r.Get("/payments", h.Admin.ListPayments)
				r.Post("/payments", h.Admin.CreatePayment)
				r.Post("/payments/receipts", h.Admin.UploadReceipt)

				r.Get("/tickets", h.Admin.ListTickets)
				r.Get("/tickets/{ticketID}", h.Admin.GetTicket)
				r.Post("/tickets/{ticketID}/replies", h.Admin.ReplyTicket)
				r.Post("/tickets/{ticketID}/close", h.Admin.CloseTicket)
			})
		})
	})
}
