package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/Dosada05/movie-battle/services"
	"github.com/go-chi/chi/v5"
)

type contextKey string

const battleIDContextKey contextKey = "battle_id"

// AuthenticateBattle admits requests carrying the battle token issued for the battle named by
// the {battleID} URL parameter.
func AuthenticateBattle(tokens services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			battleID, err := tokens.ParseBattleToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, services.ErrBattleTokenInvalid.Error())
				return
			}
			if battleID != chi.URLParam(r, "battleID") {
				writeError(w, http.StatusForbidden, services.ErrBattleForbidden.Error())
				return
			}

			ctx := context.WithValue(r.Context(), battleIDContextKey, battleID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func AuthorizeAdmin(tokens services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			err = tokens.ParseAdminToken(token)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, services.ErrForbiddenOperation):
				writeError(w, http.StatusForbidden, err.Error())
			default:
				writeError(w, http.StatusUnauthorized, services.ErrAuthenticationFailed.Error())
			}
		})
	}
}
