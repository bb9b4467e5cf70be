package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// NatsServer is an embedded broker with an in-process client connection.
type NatsServer struct {
	ns   *server.Server
	conn atomic.Pointer[nats.Conn]

	startupTimeout time.Duration
	host           string
	port           int
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	s := &NatsServer{
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
	}

	for _, opt := range opts {
		opt(s)
	}

	ns, err := server.NewServer(&server.Options{
		Host:   s.host,
		Port:   s.port,
		NoSigs: true, // Let the application handle signals
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	s.ns = ns

	return s, nil
}

func (n *NatsServer) Start(ctx context.Context) error {
	n.ns.Start()

	if !n.ns.ReadyForConnections(n.startupTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}

	conn, err := nats.Connect(n.ns.ClientURL())
	if err != nil {
		return fmt.Errorf("creating nats client connection: %w", err)
	}
	n.conn.Store(conn)

	slog.InfoContext(ctx, "nats server listening", "addr", n.ns.Addr())

	<-ctx.Done()
	n.conn.Store(nil)
	conn.Close()
	n.ns.Shutdown()
	n.ns.WaitForShutdown()

	return nil
}

// Subscribe calls handler for each message on subject. The returned func
// removes the subscription.
func (n *NatsServer) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	conn := n.conn.Load()
	if conn == nil {
		return nil, ErrNotStarted
	}
	sub, err := conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// Publish sends data on subject without waiting for delivery.
func (n *NatsServer) Publish(subject string, data []byte) error {
	conn := n.conn.Load()
	if conn == nil {
		return ErrNotStarted
	}
	return conn.Publish(subject, data)
}
