package handler

import (
	"net/http"
	"time"

	"anoa.com/charityhub/internal/modules/feed/service"
	"anoa.com/charityhub/pkg/apperror"
	"anoa.com/charityhub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

type FeedHandler struct {
	service  service.FeedService
	upgrader websocket.Upgrader
}

// NewFeedHandler accepts a nil service when redis is not configured.
func NewFeedHandler(service service.FeedService, allowedOrigins []string) *FeedHandler {
	return &FeedHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// LiveDonations streams donation events to an admin over a websocket.
func (h *FeedHandler) LiveDonations(c *gin.Context) {
	if h.service == nil {
		response.ResponseError(c, apperror.Unavailable("live feed is not configured"))
		return
	}

	ctx := c.Request.Context()

	pubsub, err := h.service.Subscribe(ctx)
	if err != nil {
		zap.L().Error("failed to subscribe to donation feed", zap.Error(err))
		response.ResponseError(c, apperror.Unavailable("live feed is unavailable"))
		return
	}
	defer pubsub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("failed to upgrade websocket", zap.Error(err))
		return
	}
	defer conn.Close()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				zap.L().Debug("websocket write failed", zap.Error(err))
				return
			}
		case <-clientClosed:
			return
		case <-ctx.Done():
			return
		}
	}
}
