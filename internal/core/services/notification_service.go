package services

import (
	"sync"
	"time"

	"newbank/internal/core/domain"
)

// NotificationService owns the per-customer notification inboxes. Inboxes
// are insertion-ordered and unbounded; notifications are never deleted.
type NotificationService struct {
	mu      sync.Mutex
	inboxes map[string][]*domain.Notification
	nextID  int
}

// NewNotificationService creates an empty notification center
func NewNotificationService() *NotificationService {
	return &NotificationService{
		inboxes: make(map[string][]*domain.Notification),
		nextID:  1,
	}
}

// Notify appends a new unread notification to the recipient's inbox and
// returns a snapshot of it. The id sequence and the append happen under one
// lock so ids stay unique and in delivery order.
func (s *NotificationService) Notify(recipient domain.CustomerID, message string) domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := &domain.Notification{
		ID:        s.nextID,
		Recipient: recipient.Key(),
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.inboxes[recipient.Key()] = append(s.inboxes[recipient.Key()], n)

	return *n
}

// ListFor returns a snapshot of the recipient's inbox in delivery order. A
// recipient with no notifications gets an empty list, never an error.
func (s *NotificationService) ListFor(recipient domain.CustomerID) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	inbox := s.inboxes[recipient.Key()]
	out := make([]domain.Notification, 0, len(inbox))
	for _, n := range inbox {
		out = append(out, *n)
	}
	return out
}
