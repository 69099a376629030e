package infra

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pot-code/course-platform/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// WebsocketHandler serves one message exchange, the connection is closed once it returns an error
type WebsocketHandler func(ctx context.Context, conn *websocket.Conn) error

// Websocket upgrades echo requests and keeps the peer alive with pings
type Websocket struct {
	upgrader     websocket.Upgrader
	writeWait    time.Duration
	pongWait     time.Duration
	pingInterval time.Duration
}

// NewWebsocket ...
func NewWebsocket() *Websocket {
	pongWait := 30 * time.Second
	return &Websocket{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			HandshakeTimeout: 3 * time.Second,
		},
		writeWait:    10 * time.Second,
		pongWait:     pongWait,
		pingInterval: pongWait * 9 / 10,
	}
}

// WithHeartbeat wrap handler function with heartbeat probe
func (ws *Websocket) WithHeartbeat(handler WebsocketHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := ws.upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			// upgrader already answered the handshake
			return nil
		}

		// the request context ends with the upgrade, the connection outlives it
		logger := logging.ExtractLoggerFromContext(c.Request().Context())
		ctx, cancel := context.WithCancel(logging.SetLoggerInContext(context.Background(), logger))

		conn.SetReadDeadline(time.Now().Add(ws.pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(ws.pongWait))
		})
		go ws.heartbeatRoutine(ctx, conn)
		go ws.processRoutine(ctx, cancel, conn, handler)
		return nil
	}
}

func (ws *Websocket) heartbeatRoutine(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(ws.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ws.writeWait)); err != nil {
				return
			}
		}
	}
}

func (ws *Websocket) processRoutine(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, handler WebsocketHandler) {
	defer func() {
		cancel()
		conn.Close()
	}()
	for {
		if err := handler(ctx, conn); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.ExtractLoggerFromContext(ctx).Debug("websocket closed", zap.Error(err))
			}
			return
		}
	}
}
