package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeChannel запоминает опубликованные routing key
type fakeChannel struct {
	mu        sync.Mutex
	published []string
	notify    chan *amqp.Error
	closed    bool
}

func (c *fakeChannel) ExchangeDeclare(string, string, bool, bool, bool, bool, amqp.Table) error {
	return nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, _ amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return amqp.ErrClosed
	}
	c.published = append(c.published, key)
	return nil
}

func (c *fakeChannel) NotifyClose(receiver chan *amqp.Error) chan *amqp.Error {
	c.notify = receiver
	return receiver
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

type fakeConn struct {
	ch     *fakeChannel
	notify chan *amqp.Error
	mu     sync.Mutex
	closed bool
}

func (c *fakeConn) Channel() (amqpChannel, error) {
	return c.ch, nil
}

func (c *fakeConn) NotifyClose(receiver chan *amqp.Error) chan *amqp.Error {
	c.notify = receiver
	return receiver
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// drop имитирует разрыв со стороны брокера
func (c *fakeConn) drop() {
	c.notify <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "broker restart"}
}

// fakeBroker выдает новое соединение на каждый dial; failures первых попыток переподключения падают
type fakeBroker struct {
	mu       sync.Mutex
	conns    []*fakeConn
	failures int
}

func (b *fakeBroker) dial(string) (amqpConnection, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.conns) > 0 && b.failures > 0 {
		b.failures--
		return nil, errors.New("connection refused")
	}
	conn := &fakeConn{ch: &fakeChannel{}}
	b.conns = append(b.conns, conn)
	return conn, nil
}

func (b *fakeBroker) dialed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conns)
}

func (b *fakeBroker) conn(i int) *fakeConn {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conns[i]
}

func newTestPublisher(t *testing.T, broker *fakeBroker) *Publisher {
	t.Helper()
	p, err := newPublisher("amqp://test", "reservations", nopLogger{}, broker.dial)
	require.NoError(t, err)
	p.minBackoff = time.Millisecond
	p.maxBackoff = 4 * time.Millisecond
	t.Cleanup(func() { _ = p.Close() })
	return p
}

var testReservation = &domain.Reservation{
	ID:        5,
	RoomID:    ptr.Ptr(int64(1)),
	Date:      time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
	Time:      "19:00",
	PartySize: 2,
	Status:    domain.StatusConfirmed,
}

func TestPublisher_Publish(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)

	require.NoError(t, p.ReservationCreated(context.Background(), testReservation))
	require.NoError(t, p.StatusChanged(context.Background(), testReservation, domain.StatusPending))

	assert.Equal(t, []string{RoutingKeyCreated, RoutingKeyStatusChanged}, broker.conn(0).ch.published)
}

func TestPublisher_ReconnectsAfterConnectionLoss(t *testing.T) {
	broker := &fakeBroker{failures: 2}
	p := newTestPublisher(t, broker)

	broker.conn(0).drop()

	require.Eventually(t, func() bool { return broker.dialed() == 2 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		return p.ReservationCreated(context.Background(), testReservation) == nil
	}, time.Second, time.Millisecond)

	old := broker.conn(0)
	old.mu.Lock()
	assert.True(t, old.closed, "lost connection is released")
	old.mu.Unlock()
	assert.Equal(t, []string{RoutingKeyCreated}, broker.conn(1).ch.published)
}

func TestPublisher_ChannelCloseTriggersReconnect(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)

	close(broker.conn(0).ch.notify)

	require.Eventually(t, func() bool { return broker.dialed() == 2 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		return p.StatusChanged(context.Background(), testReservation, domain.StatusPending) == nil
	}, time.Second, time.Millisecond)
}

func TestPublisher_NotConnectedWhileReconnecting(t *testing.T) {
	broker := &fakeBroker{failures: 1 << 30}
	p := newTestPublisher(t, broker)

	broker.conn(0).drop()

	require.Eventually(t, func() bool {
		err := p.ReservationCreated(context.Background(), testReservation)
		return errors.Is(err, ErrNotConnected)
	}, time.Second, time.Millisecond)

	err := p.ReservationCreated(context.Background(), testReservation)
	assert.ErrorIs(t, err, ErrPublish)
}

func TestPublisher_CloseStopsReconnect(t *testing.T) {
	broker := &fakeBroker{failures: 1 << 30}
	p, err := newPublisher("amqp://test", "reservations", nopLogger{}, broker.dial)
	require.NoError(t, err)
	p.minBackoff = time.Millisecond
	p.maxBackoff = time.Millisecond

	broker.conn(0).drop()
	require.Eventually(t, func() bool {
		return errors.Is(p.ReservationCreated(context.Background(), testReservation), ErrNotConnected)
	}, time.Second, time.Millisecond)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, p.Close())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not stop the reconnect loop")
	}
	assert.Equal(t, 1, broker.dialed())
}

func TestPublisher_DialFailure(t *testing.T) {
	_, err := newPublisher("amqp://test", "reservations", nopLogger{}, func(string) (amqpConnection, error) {
		return nil, errors.New("no route to host")
	})
	assert.ErrorIs(t, err, ErrConnect)
}
