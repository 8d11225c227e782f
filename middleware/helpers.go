package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

var errMissingToken = errors.New("missing or malformed authorization header")

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingToken
	}
	return strings.TrimSpace(token), nil
}

func GetBattleIDFromContext(ctx context.Context) (string, error) {
	battleID, ok := ctx.Value(battleIDContextKey).(string)
	if !ok || battleID == "" {
		return "", errors.New("battle id not found in context")
	}
	return battleID, nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		slog.Error("failed to write middleware error response", slog.Any("error", err))
	}
}
