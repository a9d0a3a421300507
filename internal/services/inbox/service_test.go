package inbox_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/api"
	"storefront/internal/domain"
	"storefront/internal/mockapi"
	"storefront/internal/services/inbox"
)

type countingAPI struct {
	domain.MessageAPI
	calls atomic.Int32
	fail  bool
}

func (c *countingAPI) UnreadCount(context.Context) (int, error) {
	n := c.calls.Add(1)
	if c.fail && n == 1 {
		return 0, errors.New("down")
	}
	return int(n), nil
}

func TestPoll_FiresImmediately(t *testing.T) {
	fake := &countingAPI{}
	svc := inbox.New(fake, inbox.WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan int, 1)
	done := make(chan error, 1)
	go func() { done <- svc.Poll(ctx, func(n int) { got <- n }) }()

	select {
	case n := <-got:
		if n != 1 {
			t.Fatalf("count = %d, want 1", n)
		}
	case <-time.After(time.Second):
		t.Fatal("no immediate fetch")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("poll returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("poll did not stop on cancel")
	}
	if fake.calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", fake.calls.Load())
	}
}

func TestPoll_KeepsGoingAfterError(t *testing.T) {
	fake := &countingAPI{fail: true}
	svc := inbox.New(fake, inbox.WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan int, 8)
	go func() { _ = svc.Poll(ctx, func(n int) { got <- n }) }()

	select {
	case n := <-got:
		if n < 2 {
			t.Fatalf("first reported count = %d; the failed fetch should be skipped", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("poller stopped after an error")
	}
	if svc.Unread() < 2 {
		t.Fatalf("cached unread = %d", svc.Unread())
	}
}

func TestInbox_SendAndMarkRead(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(mockapi.New().Handler())
	defer srv.Close()
	client := api.New(srv.URL)
	resp, err := client.Login(ctx, mockapi.BuyerUsername, mockapi.BuyerPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	client.SetToken(resp.Access)
	svc := inbox.New(client)

	if _, err := svc.Send(ctx, 2, "   ", nil); !errors.Is(err, inbox.ErrEmptyMessage) {
		t.Fatalf("blank send: %v", err)
	}
	product := int64(1)
	if _, err := svc.Send(ctx, 2, "Is this still available?", &product); err != nil {
		t.Fatalf("send: %v", err)
	}

	if n, err := svc.Refresh(ctx); err != nil || n != 1 {
		t.Fatalf("unread = %d %v", n, err)
	}
	msgs, err := svc.Conversation(ctx, 2)
	if err != nil || len(msgs) != 2 {
		t.Fatalf("conversation: %d %v", len(msgs), err)
	}
	if msgs[0].Recipient != resp.User.ID {
		t.Fatal("conversation should be oldest first")
	}
	if err := svc.MarkRead(ctx, msgs[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if svc.Unread() != 0 {
		t.Fatalf("cached unread = %d", svc.Unread())
	}
}
