package routes

import (
	"net/http"

	_ "github.com/Dosada05/movie-battle/docs"
	"github.com/Dosada05/movie-battle/handlers"
	"github.com/Dosada05/movie-battle/middleware"
	"github.com/Dosada05/movie-battle/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AllowedOrigins []string
	// TrustProxyHeaders enables chi's RealIP, which takes the client address from
	// X-Forwarded-For / X-Real-IP.
	TrustProxyHeaders bool
	Tokens            services.TokenService
	VoteLimiter       *middleware.RateLimiter
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	battleHandler *handlers.BattleHandler,
	movieHandler *handlers.MovieHandler,
	authHandler *handlers.AuthHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	if opts.TrustProxyHeaders {
		router.Use(chiMiddleware.RealIP)
	}
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", battleHandler.Healthz)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/battles", func(r chi.Router) {
		r.Post("/", battleHandler.CreateBattle)

		r.Route("/{battleID}", func(r chi.Router) {
			r.Get("/", battleHandler.GetBattle)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthenticateBattle(opts.Tokens))

				if opts.VoteLimiter != nil {
					r.With(opts.VoteLimiter.Middleware).Post("/votes", battleHandler.Vote)
				} else {
					r.Post("/votes", battleHandler.Vote)
				}
				r.Post("/restart", battleHandler.Restart)
			})
		})
	})

	router.Get("/ws/battles/{battleID}", webSocketHandler.ServeWs)
	router.Get("/champions", leaderboardHandler.GetChampions)
	router.Post("/admin/login", authHandler.Login)

	router.Route("/movies", func(r chi.Router) {
		r.Get("/", movieHandler.ListMovies)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthorizeAdmin(opts.Tokens))

			r.Post("/", movieHandler.CreateMovie)
			r.Post("/{movieID}/poster", movieHandler.UploadPoster)
			r.Delete("/{movieID}", movieHandler.DeleteMovie)
		})
	})
}
