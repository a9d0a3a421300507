package inbox

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/logx"
)

// DefaultPollInterval is the unread-count refresh period.
const DefaultPollInterval = 30 * time.Second

// ErrEmptyMessage is returned by Send for blank content.
var ErrEmptyMessage = errors.New("message content is empty")

type Service struct {
	api      domain.MessageAPI
	interval time.Duration

	mu     sync.RWMutex
	unread int
}

type Option func(*Service)

// WithInterval overrides DefaultPollInterval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

func New(api domain.MessageAPI, opts ...Option) *Service {
	s := &Service{api: api, interval: DefaultPollInterval}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interval returns the poll period.
func (s *Service) Interval() time.Duration { return s.interval }

// Poll blocks until ctx is done, calling onCount after every successful
// fetch. onCount may be nil.
func (s *Service) Poll(ctx context.Context, onCount func(int)) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		n, err := s.Refresh(ctx)
		switch {
		case err == nil:
			if onCount != nil {
				onCount(n)
			}
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			logx.Warn().Err(err).Msg("unread count poll failed")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Refresh fetches the unread count and caches it.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	n, err := s.api.UnreadCount(ctx)
	if err != nil {
		return s.Unread(), err
	}
	s.mu.Lock()
	s.unread = n
	s.mu.Unlock()
	return n, nil
}

// Unread returns the last fetched count.
func (s *Service) Unread() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

func (s *Service) List(ctx context.Context) ([]domain.Message, error) {
	return s.api.ListMessages(ctx)
}

func (s *Service) Conversation(ctx context.Context, userID int64) ([]domain.Message, error) {
	return s.api.Conversation(ctx, userID)
}

// Send posts a message, optionally about a product.
func (s *Service) Send(ctx context.Context, recipient int64, content string, product *int64) (domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, ErrEmptyMessage
	}
	return s.api.SendMessage(ctx, domain.MessageInput{Recipient: recipient, Content: content, Product: product})
}

// MarkRead marks a message read and lowers the cached count.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if err := s.api.MarkRead(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	if s.unread > 0 {
		s.unread--
	}
	s.mu.Unlock()
	return nil
}
