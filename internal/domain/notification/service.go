package notification

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service persists notifications and pushes them to live subscribers.
// Delivery is fire-and-forget: Notify enqueues and returns immediately,
// and a failed delivery never affects the operation that produced it.
type Service struct {
	repo  *Repository
	hub   *Hub
	queue chan *Notification
	wg    sync.WaitGroup
	once  sync.Once
}

func NewService(repo *Repository, hub *Hub) *Service {
	s := &Service{
		repo:  repo,
		hub:   hub,
		queue: make(chan *Notification, 256),
	}
	s.wg.Add(1)
	go s.worker()
	return s
}

// Notify enqueues a notification. Never blocks; drops with a warning if
// the queue is saturated.
func (s *Service) Notify(userID uuid.UUID, typ Type, title, body string, data *Data) {
	if s == nil {
		return
	}

	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		CreatedAt: time.Now(),
	}
	if body != "" {
		n.Body = sql.NullString{String: body, Valid: true}
	}
	n.SetData(data)

	select {
	case s.queue <- n:
	default:
		log.Warn().Str("user_id", userID.String()).Str("type", string(typ)).Msg("notification queue full, dropping")
	}
}

func (s *Service) worker() {
	defer s.wg.Done()
	for n := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		if err := s.repo.Create(ctx, n); err != nil {
			log.Error().Err(err).Str("user_id", n.UserID.String()).Msg("failed to persist notification")
			cancel()
			continue
		}

		if s.hub != nil {
			unread, _ := s.repo.CountUnreadByUser(ctx, n.UserID)
			_ = s.hub.SendToUserJSON(n.UserID, map[string]interface{}{
				"type": "notification:new",
				"data": map[string]interface{}{
					"notification": n,
					"unread_count": unread,
				},
			})
		}
		cancel()
	}
}

// Close drains the queue and stops the worker
func (s *Service) Close() {
	s.once.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnreadByUser(ctx, userID)
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
