package ws

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gaspigz/taskManagerClg/internal/api/shared"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
	"github.com/gaspigz/taskManagerClg/internal/service/auth"
	"github.com/gorilla/websocket"
)

// Handler upgrades authenticated requests to websocket subscriptions. The
// access token is taken from an "Authorization: Bearer" header or, for
// browsers that cannot set headers on upgrades, the "token" query parameter.
type Handler struct {
	hub      *Hub
	tokens   auth.TokenService
	upgrader websocket.Upgrader
}

// NewHandler creates a Handler. An empty allowedOrigin accepts any origin.
func NewHandler(hub *Hub, tokens auth.TokenService, allowedOrigin string) *Handler {
	return &Handler{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	token := requestToken(r)
	if token == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	claims, err := h.tokens.ValidateToken(r.Context(), token)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		log.Debug("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := newClient(claims.UserID, conn, h.hub)
	if !h.hub.register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return
	}

	go client.run()
}

// requestToken prefers the bearer header and falls back to the query string.
func requestToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}
