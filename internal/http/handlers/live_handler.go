package handlers

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/localhire/internal/dto"
	"github.com/ignatzorin/localhire/internal/http/handlers/common"
	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/query"
	"github.com/ignatzorin/localhire/internal/ws"
)

// LiveHandler открывает WebSocket сессии живых списков: клиент шлёт действия,
// сервер отвечает пересчитанной страницей.
type LiveHandler struct {
	hub      *ws.Hub
	sessions map[string]func() ws.Session
	upgrader websocket.Upgrader
}

// NewLiveHandler создаёт хэндлер. Пустой allowedOrigins или "*" разрешает любой origin.
func NewLiveHandler(hub *ws.Hub, pipelines Pipelines, allowedOrigins []string) *LiveHandler {
	sessions := map[string]func() ws.Session{
		"jobs": func() ws.Session {
			return ws.NewQuerySession(pipelines.Jobs, func(r query.Result[models.Job]) any {
				return dto.NewJobList(r)
			})
		},
		"artisans": func() ws.Session {
			return ws.NewQuerySession(pipelines.Artisans, func(r query.Result[models.Artisan]) any {
				return dto.NewArtisanList(r)
			})
		},
		"products": func() ws.Session {
			return ws.NewQuerySession(pipelines.Products, func(r query.Result[models.Product]) any {
				return dto.NewProductList(r, time.Now())
			})
		},
	}

	return &LiveHandler{
		hub:      hub,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowedOrigins) == 0 ||
					slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// Handle обслуживает GET /api/live/:kind
func (h *LiveHandler) Handle(c *gin.Context) {
	kind := c.Param("kind")
	newSession, ok := h.sessions[kind]
	if !ok {
		common.RespondError(c, http.StatusNotFound, "unknown list: "+kind)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		return
	}

	client := ws.NewClient(conn, h.hub, kind, newSession())
	h.hub.Register(client)

	client.Run(c.Request.Context())
}
