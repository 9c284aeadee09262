package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/KhinMyintMyatThu/you-app-backend/internal/auth"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/config"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/events"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/repository"
)

// Server pushes message_received events to the receiver's connected sockets.
// It is the in-process downstream of the notification channel.
type Server struct {
	hub    *Hub
	users  repository.UserRepository
	tokens *auth.TokenManager
	cfg    config.WS
	log    *zap.SugaredLogger
}

func NewServer(users repository.UserRepository, tokens *auth.TokenManager, cfg config.WS, log *zap.SugaredLogger) *Server {
	return &Server{
		hub:    NewHub(),
		users:  users,
		tokens: tokens,
		cfg:    cfg,
		log:    log,
	}
}

// Handle serves one websocket connection. Clients authenticate with
// ?token=<jwt>; the connection is read-only from the client side, used purely
// as a notification stream.
func (s *Server) Handle(c *websocket.Conn) {
	token := c.Query("token")
	if token == "" {
		_ = c.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		_ = c.Close()
		return
	}
	identity, err := s.tokens.Verify(token)
	if err != nil {
		_ = c.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		_ = c.Close()
		return
	}

	client := NewClient(identity)
	s.hub.Add(client)
	defer c.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(s.cfg.PingInterval())
		defer ticker.Stop()
		for {
			select {
			case b, ok := <-client.Send:
				if !ok {
					return
				}
				_ = c.SetWriteDeadline(time.Now().Add(s.cfg.WriteDeadline()))
				if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			case <-ticker.C:
				_ = c.SetWriteDeadline(time.Now().Add(s.cfg.WriteDeadline()))
				if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// Drain the read side to detect disconnects.
	c.SetReadLimit(s.cfg.MaxMsgBytes)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
	// Remove first so no fan-out can race the channel close.
	s.hub.Remove(client)
	close(client.Send)
	<-done
}

// HandleEvent consumes a record from the notification topic and fans it out
// to the receiver's sockets. The event carries the receiver's username, so it
// is resolved to the identity the hub is keyed by. Unknown events and
// unresolvable receivers are dropped.
func (s *Server) HandleEvent(key string, value []byte) {
	if key != events.EventMessageReceived {
		return
	}
	var ev events.MessageReceived
	if err := json.Unmarshal(value, &ev); err != nil {
		s.log.Warnw("malformed notification event", "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	receiver, err := s.users.FindByUsername(ctx, ev.Receiver)
	if err != nil {
		s.log.Warnw("notification receiver lookup failed", "receiver", ev.Receiver, "err", err)
		return
	}

	out, err := json.Marshal(struct {
		Event   string                 `json:"event"`
		Payload events.MessageReceived `json:"payload"`
	}{Event: events.EventMessageReceived, Payload: ev})
	if err != nil {
		return
	}
	s.hub.SendTo(receiver.Email, out)
}
