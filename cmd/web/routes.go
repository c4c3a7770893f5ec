package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/unitytennis/tennis-backend/docs"
	"github.com/unitytennis/tennis-backend/internal/phonecrypt"
	"github.com/unitytennis/tennis-backend/internal/service"
	"github.com/unitytennis/tennis-backend/internal/store"
)

func newRouter(database *sqlx.DB, cipher *phonecrypt.Cipher, allowedOrigins []string) http.Handler {
	playerStore := store.NewPlayerStore(database)
	tournamentStore := store.NewTournamentStore(database)
	bracketStore := store.NewBracketStore(database)
	matchupStore := store.NewMatchupStore(database)

	h := &handlers{
		players:     service.NewPlayerService(database, playerStore, cipher),
		tournaments: service.NewTournamentService(database, tournamentStore, playerStore),
		brackets:    service.NewBracketService(database, bracketStore, tournamentStore, playerStore, cipher),
		matchups:    service.NewMatchupService(database, matchupStore, bracketStore, playerStore),
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	r.Get("/", h.home)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/players", func(r chi.Router) {
		r.Get("/", h.listPlayers)
		r.Post("/", h.createPlayer)
		r.Delete("/{id}", h.deletePlayer)
	})

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.listTournaments)
		r.Post("/", h.createTournament)
		r.Get("/{id}/brackets", h.listTournamentBrackets)
	})

	r.Get("/tournament-players", h.listTournamentPlayers)
	r.Post("/tournament-players", h.addTournamentPlayers)

	r.Route("/brackets", func(r chi.Router) {
		r.Get("/", h.listBrackets)
		r.Post("/", h.createBracket)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/players", h.bracketRoster)
			r.Post("/players", h.registerBracketPlayer)
			r.Delete("/players/{playerID}", h.unregisterBracketPlayer)

			r.Get("/matchups", h.listBracketMatchups)
			r.Delete("/matchups", h.deleteBracketMatchups)
			r.Get("/rounds", h.bracketRounds)
		})
	})

	r.Route("/matchups", func(r chi.Router) {
		r.Get("/", h.listMatchups)
		r.Post("/", h.createMatchup)
		r.Post("/generate", h.generateMatchups)
		r.Patch("/{id}/result", h.recordResult)
	})

	return r
}
