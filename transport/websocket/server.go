package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

type gameUseCase interface {
	CreateRoom(connID, code, name string) (string, entity.Side, error)
	CreateBotRoom(connID, code, name string) (string, entity.Side, error)
	JoinRoom(connID, code, name string) (entity.Side, error)

	Move(connID, code string, row, col int, side entity.Side) error

	RequestRematch(connID, code string) error
	AcceptRematch(connID, code string) error
	DeclineRematch(connID, code string) error
	ForceReset(connID, code string) error

	LeaveRoom(connID, code string) error
	Disconnect(connID string)

	SendMessage(connID, code, text string) error
	Typing(connID, code string, isTyping bool) error
}

type handlerFunc func(c *client, payload json.RawMessage) error

type Server struct {
	logger *slog.Logger
	hub    *Hub
	game   gameUseCase

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, hub *Hub, game gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		hub:    hub,
		game:   game,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionCreateRoom] = server.handleCreateRoom
	server.handlers[actionCreateBotRoom] = server.handleCreateBotRoom
	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionRequestRematch] = server.handleRequestRematch
	server.handlers[actionAcceptRematch] = server.handleAcceptRematch
	server.handlers[actionDeclineRematch] = server.handleDeclineRematch
	server.handlers[actionForceReset] = server.handleForceReset
	server.handlers[actionLeaveRoom] = server.handleLeaveRoom
	server.handlers[actionSendMessage] = server.handleSendMessage
	server.handlers[actionTyping] = server.handleTyping

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.ServeWS)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeWS - upgrades the connection and serves it until it closes.
func (that *Server) ServeWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(uuid.NewString(), conn)
	that.hub.register(c)

	log.Info("WebSocket connection established", "connID", c.id)

	go c.writePump()
	that.readPump(c)
}

// readPump - processes messages from the client, then disconnects it.
func (that *Server) readPump(c *client) {
	log := that.logger.With("method", "readPump", "connID", c.id)

	defer func() {
		that.hub.unregister(c)
		that.game.Disconnect(c.id)
		c.close()

		log.Info("WebSocket connection closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.sendError(c, "", "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(c, message.Action, "unknown action")
			continue
		}

		if err = handler(c, message.Payload); err != nil {
			that.handleError(c, message.Action, err)
		}
	}
}
