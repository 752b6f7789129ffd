package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	minReconnectBackoff = time.Second
	maxReconnectBackoff = 30 * time.Second
)

// session соединение и канал с подписками на их закрытие
type session struct {
	conn       amqpConnection
	ch         amqpChannel
	connClosed chan *amqp.Error
	chClosed   chan *amqp.Error
}

func (s *session) close() {
	_ = s.ch.Close()
	_ = s.conn.Close()
}

// Publisher публикует события бронирований в topic exchange RabbitMQ
// После обрыва соединения переподключается в фоне; пока связи нет, publish
// возвращает ErrNotConnected
type Publisher struct {
	url        string
	exchange   string
	log        Logger
	dial       func(url string) (amqpConnection, error)
	minBackoff time.Duration
	maxBackoff time.Duration

	mu   sync.Mutex // amqp.Channel не предназначен для конкурентной публикации
	sess *session

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewPublisher подключается к брокеру и объявляет durable topic exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	return newPublisher(url, exchange, log, dialAMQP)
}

func newPublisher(url, exchange string, log Logger, dial func(string) (amqpConnection, error)) (*Publisher, error) {
	p := &Publisher{
		url:        url,
		exchange:   exchange,
		log:        log,
		dial:       dial,
		minBackoff: minReconnectBackoff,
		maxBackoff: maxReconnectBackoff,
		done:       make(chan struct{}),
	}

	sess, err := p.connect()
	if err != nil {
		return nil, err
	}
	p.sess = sess

	p.wg.Add(1)
	go p.watch(sess)

	return p, nil
}

// dialedConn приводит *amqp.Connection к amqpConnection
type dialedConn struct {
	*amqp.Connection
}

func (c dialedConn) Channel() (amqpChannel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func dialAMQP(url string) (amqpConnection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return dialedConn{Connection: conn}, nil
}

func (p *Publisher) connect() (*session, error) {
	conn, err := p.dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(
		p.exchange, // name
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, p.exchange, err)
	}

	return &session{
		conn:       conn,
		ch:         ch,
		connClosed: conn.NotifyClose(make(chan *amqp.Error, 1)),
		chClosed:   ch.NotifyClose(make(chan *amqp.Error, 1)),
	}, nil
}

// watch ждет закрытия соединения или канала и поднимает новую сессию
func (p *Publisher) watch(sess *session) {
	defer p.wg.Done()

	for {
		var reason *amqp.Error
		select {
		case <-p.done:
			return
		case reason = <-sess.connClosed:
		case reason = <-sess.chClosed:
		}

		p.mu.Lock()
		p.sess = nil
		p.mu.Unlock()
		sess.close()

		p.log.Warn("Events: broker connection lost (%v), reconnecting", reason)

		next, ok := p.reconnect()
		if !ok {
			return
		}

		p.mu.Lock()
		select {
		case <-p.done:
			p.mu.Unlock()
			next.close()
			return
		default:
		}
		p.sess = next
		p.mu.Unlock()

		p.log.Info("Events: reconnected to broker, exchange=%s", p.exchange)
		sess = next
	}
}

// reconnect повторяет подключение с экспоненциальной задержкой до успеха или Close
func (p *Publisher) reconnect() (*session, bool) {
	backoff := p.minBackoff
	for {
		select {
		case <-p.done:
			return nil, false
		case <-time.After(backoff):
		}

		sess, err := p.connect()
		if err == nil {
			return sess, true
		}

		p.log.Warn("Events: reconnect failed: %v; retrying in %s", err, backoff)
		backoff *= 2
		if backoff > p.maxBackoff {
			backoff = p.maxBackoff
		}
	}
}

// ReservationCreated публикует reservation.created
func (p *Publisher) ReservationCreated(ctx context.Context, res *domain.Reservation) error {
	return p.publish(ctx, RoutingKeyCreated, NewReservationEvent(res, nil, time.Now()))
}

// StatusChanged публикует reservation.status_changed
func (p *Publisher) StatusChanged(ctx context.Context, res *domain.Reservation, previous domain.ReservationStatus) error {
	return p.publish(ctx, RoutingKeyStatusChanged, NewReservationEvent(res, &previous, time.Now()))
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, routingKey, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sess == nil {
		return fmt.Errorf("%w: %s reservation=%d: %w", ErrPublish, routingKey, event.ReservationID, ErrNotConnected)
	}

	if err := p.sess.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("%w: %s reservation=%d: %v", ErrPublish, routingKey, event.ReservationID, err)
	}

	p.log.Info("Events: published %s for reservation id=%d", routingKey, event.ReservationID)
	return nil
}

// Close останавливает переподключение и закрывает канал и соединение
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() { close(p.done) })

	p.mu.Lock()
	sess := p.sess
	p.sess = nil
	p.mu.Unlock()

	p.wg.Wait()

	if sess == nil {
		return nil
	}
	if err := sess.ch.Close(); err != nil {
		_ = sess.conn.Close()
		return err
	}
	return sess.conn.Close()
}

// NoopPublisher используется, когда RabbitMQ выключен в конфигурации
type NoopPublisher struct{}

func (NoopPublisher) ReservationCreated(context.Context, *domain.Reservation) error {
	return nil
}

func (NoopPublisher) StatusChanged(context.Context, *domain.Reservation, domain.ReservationStatus) error {
	return nil
}
