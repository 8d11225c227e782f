package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/movie-battle/brackets"
	"github.com/Dosada05/movie-battle/services"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// the stream is read-only, any origin may watch
		return true
	},
}

type WebSocketHandler struct {
	hub           *brackets.Hub
	battleService services.BattleService
	logger        *slog.Logger
}

func NewWebSocketHandler(hub *brackets.Hub, bs services.BattleService, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHandler{
		hub:           hub,
		battleService: bs,
		logger:        logger,
	}
}

// ServeWs streams updates of one battle. Clients connect to /ws/battles/{battleID} and receive
// the current state first, then every change.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	battleID := chi.URLParam(r, "battleID")

	if _, err := h.battleService.GetBattle(r.Context(), battleID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade websocket connection", slog.String("battle_id", battleID), slog.Any("error", err))
		return
	}

	roomID := brackets.RoomID(battleID)
	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}

	err = h.battleService.Watch(r.Context(), battleID, func(view services.BattleView) error {
		messageType := brackets.MessageMatchUpdated
		if view.Champion != nil {
			messageType = brackets.MessageChampionCrowned
		}
		return h.hub.Join(client, &brackets.WebSocketMessage{Type: messageType, Payload: view})
	})
	if err != nil {
		h.logger.Warn("failed to subscribe websocket client", slog.String("battle_id", battleID), slog.Any("error", err))
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "battle unavailable"),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()

	h.logger.Debug("websocket client connected", slog.String("room", roomID))
}
