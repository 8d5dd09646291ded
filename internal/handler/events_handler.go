package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/j1progress/progress-api/internal/models"
	"github.com/j1progress/progress-api/internal/store"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
	"github.com/j1progress/progress-api/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type eventStore interface {
	SubscribeUnits(ctx context.Context, cb func([]models.Unit)) (func(), error)
	SubscribeProjects(ctx context.Context, cb func([]models.Project)) (func(), error)
	SubscribeGroups(ctx context.Context, cb func([]models.ProjectGroup)) (func(), error)
	SubscribeReports(ctx context.Context, cb func([]models.Report)) (func(), error)
}

// eventMessage frames a collection snapshot pushed over the websocket.
type eventMessage struct {
	Collection store.Collection `json:"collection"`
	Data       interface{}      `json:"data"`
}

// EventsHandler exposes the store's subscriptions as a websocket feed: on
// connect the client receives the full collection and again after every
// committed change.
type EventsHandler struct {
	store  eventStore
	logger *zap.Logger
}

// NewEventsHandler constructs the handler.
func NewEventsHandler(store eventStore, logger *zap.Logger) *EventsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventsHandler{store: store, logger: logger}
}

// Stream godoc
// @Summary Live collection snapshots over websocket
// @Tags Events
// @Param collection path string true "units, projects, groups or reports"
// @Router /events/{collection} [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	collection := store.Collection(c.Param("collection"))
	switch collection {
	case store.CollectionUnits, store.CollectionProjects, store.CollectionGroups, store.CollectionReports:
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown collection"))
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	// Snapshots are serialised through a channel so a slow client never
	// blocks the store's notification fan-out.
	out := make(chan eventMessage, 8)
	push := func(data interface{}) {
		select {
		case out <- eventMessage{Collection: collection, Data: data}:
		default:
			h.logger.Warn("dropping snapshot for slow subscriber",
				zap.String("collection", string(collection)))
		}
	}

	ctx := c.Request.Context()
	var unsubscribe func()
	switch collection {
	case store.CollectionUnits:
		unsubscribe, err = h.store.SubscribeUnits(ctx, func(units []models.Unit) { push(units) })
	case store.CollectionProjects:
		unsubscribe, err = h.store.SubscribeProjects(ctx, func(projects []models.Project) { push(projects) })
	case store.CollectionGroups:
		unsubscribe, err = h.store.SubscribeGroups(ctx, func(groups []models.ProjectGroup) { push(groups) })
	case store.CollectionReports:
		unsubscribe, err = h.store.SubscribeReports(ctx, func(reports []models.Report) { push(reports) })
	}
	if err != nil {
		_ = ws.WriteJSON(map[string]string{"error": "failed to subscribe"})
		return
	}
	defer unsubscribe()

	// Drain client frames so pings and close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-out:
			if err := ws.WriteJSON(msg); err != nil {
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
