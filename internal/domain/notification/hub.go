package notification

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const eventsChannel = "notify:user_events"

type userEventMessage struct {
	UserID           string          `json:"user_id"`
	Payload          json.RawMessage `json:"payload"`
	SenderInstanceID string          `json:"sender_instance_id"`
}

// Connection is one websocket subscriber
type Connection struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
}

// Hub fans notification events out to websocket subscribers. With Redis
// configured, events are published cross-instance over pub/sub; without
// it the hub serves local connections only.
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]map[*Connection]bool

	redis      *redis.Client
	instanceID string
}

func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID]map[*Connection]bool),
		redis:       redisClient,
		instanceID:  uuid.New().String(),
	}
}

// Run consumes cross-instance events until the context is cancelled.
// No-op without Redis.
func (h *Hub) Run(ctx context.Context) {
	if h.redis == nil {
		return
	}

	pubsub := h.redis.Subscribe(ctx, eventsChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event userEventMessage
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Msg("malformed notification event")
				continue
			}
			if event.SenderInstanceID == h.instanceID {
				continue
			}
			if userID, err := uuid.Parse(event.UserID); err == nil {
				h.deliverLocal(userID, event.Payload)
			}
		}
	}
}

// Register attaches a websocket subscriber
func (h *Hub) Register(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connections[c.UserID] == nil {
		h.connections[c.UserID] = make(map[*Connection]bool)
	}
	h.connections[c.UserID][c] = true
}

// Unregister detaches a subscriber and closes its send channel
func (h *Hub) Unregister(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.connections[c.UserID]; ok {
		if conns[c] {
			delete(conns, c)
			close(c.Send)
		}
		if len(conns) == 0 {
			delete(h.connections, c.UserID)
		}
	}
}

// SendToUserJSON delivers a payload to every connection the user holds,
// on this instance and (via Redis) on the others.
func (h *Hub) SendToUserJSON(userID uuid.UUID, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	h.deliverLocal(userID, raw)

	if h.redis != nil {
		event, err := json.Marshal(userEventMessage{
			UserID:           userID.String(),
			Payload:          raw,
			SenderInstanceID: h.instanceID,
		})
		if err == nil {
			if err := h.redis.Publish(context.Background(), eventsChannel, event).Err(); err != nil {
				log.Warn().Err(err).Msg("failed to publish notification event")
			}
		}
	}
	return nil
}

func (h *Hub) deliverLocal(userID uuid.UUID, raw []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections[userID] {
		select {
		case c.Send <- raw:
		default:
			// Slow consumer; drop rather than block the sender
			log.Warn().Str("user_id", userID.String()).Msg("notification event dropped")
		}
	}
}
