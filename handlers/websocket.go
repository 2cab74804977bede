package handlers

import (
	"net/http"
	"time"

	"marketplace-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSOptions tunes the chat websocket endpoint. A zero PingInterval turns
// keepalive pings off.
type WSOptions struct {
	MaxMessageBytes int64
	PingInterval    time.Duration
}

// WSHandler groups dependencies for the chat websocket flow
type WSHandler struct {
	registry  *ws.Registry
	admission *ws.Admission
	relay     *ws.Relay
	log       *zap.Logger
	opts      WSOptions
}

func NewWSHandler(registry *ws.Registry, admission *ws.Admission, relay *ws.Relay, log *zap.Logger, opts WSOptions) *WSHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WSHandler{
		registry:  registry,
		admission: admission,
		relay:     relay,
		log:       log,
		opts:      opts,
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleChatWS upgrades to websocket and relays the messages a user sends
// GET /api/chats?id=<user_id>
func (h *WSHandler) HandleChatWS(c *gin.Context) {
	userID, err := h.admission.Admit(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		h.log.Warn("websocket admission refused",
			zap.String("remote_addr", c.ClientIP()),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already replied to the client
		h.log.Warn("websocket upgrade failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	conn := ws.NewConn(raw)
	log := h.log.With(zap.String("user_id", userID))

	h.registry.Register(userID, conn)
	log.Info("chat channel opened", zap.Int("channels", h.registry.ChannelCount(userID)))

	done := make(chan struct{})
	defer func() {
		close(done)
		h.registry.Unregister(conn)
		_ = conn.Close()
		log.Info("chat channel closed")
	}()

	if h.opts.MaxMessageBytes > 0 {
		raw.SetReadLimit(h.opts.MaxMessageBytes)
	}
	if h.opts.PingInterval > 0 {
		pongWait := 2 * h.opts.PingInterval
		_ = raw.SetReadDeadline(time.Now().Add(pongWait))
		raw.SetPongHandler(func(string) error {
			return raw.SetReadDeadline(time.Now().Add(pongWait))
		})
		go h.keepAlive(conn, done, log)
	}

	// Frames of one channel are relayed one at a time, in arrival order
	ctx := c.Request.Context()
	for {
		mt, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("client closed channel")
			} else if conn.IsOpen() {
				log.Debug("read failed", zap.Error(err))
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}
		// failures are logged by the relay and the channel stays open
		_, _ = h.relay.Handle(ctx, payload)
	}
}

func (h *WSHandler) keepAlive(conn *ws.Conn, done <-chan struct{}, log *zap.Logger) {
	ticker := time.NewTicker(h.opts.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.Ping(); err != nil {
				log.Debug("ping failed", zap.Error(err))
				return
			}
		}
	}
}

// GetConnectedUsers GET /api/chats/connected
func (h *WSHandler) GetConnectedUsers(c *gin.Context) {
	users := h.registry.Connected()
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// GetUserPresence GET /api/chats/connected/:id
func (h *WSHandler) GetUserPresence(c *gin.Context) {
	userID := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"user_id":  userID,
		"online":   h.registry.IsConnected(userID),
		"channels": h.registry.ChannelCount(userID),
	})
}
