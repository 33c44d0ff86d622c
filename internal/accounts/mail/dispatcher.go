package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/flowmerce/accounts/pkg/slogx"
)

const (
	defaultWorkers     = 2
	defaultQueueSize   = 100
	defaultSendTimeout = 30 * time.Second
)

// job renders its message on the worker, keeping template work off the
// request path.
type job struct {
	ctx     context.Context
	kind    string
	compose func() (Message, error)
}

// Dispatcher renders account emails and delivers them from a bounded queue
// on background workers. Callers never block on delivery; a full queue or a
// failed send is logged and dropped.
type Dispatcher struct {
	composer    Composer
	sender      Sender
	logger      *slog.Logger
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan job
	wg     sync.WaitGroup
}

// DispatcherOptions tunes a Dispatcher. Zero values pick defaults.
type DispatcherOptions struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

// NewDispatcher starts the workers. Call Shutdown to drain the queue.
func NewDispatcher(composer Composer, sender Sender, logger *slog.Logger, opts DispatcherOptions) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = defaultSendTimeout
	}

	d := &Dispatcher{
		composer:    composer,
		sender:      sender,
		logger:      logger,
		sendTimeout: opts.SendTimeout,
		queue:       make(chan job, opts.QueueSize),
	}
	d.wg.Add(opts.Workers)
	for range opts.Workers {
		go d.work()
	}
	return d
}

// SendActivationEmail queues the activation link for email.
func (d *Dispatcher) SendActivationEmail(ctx context.Context, email, token string) {
	d.enqueue(ctx, "activation", func() (Message, error) { return d.composer.Activation(email, token) })
}

// SendPasswordResetEmail queues the password reset link for email.
func (d *Dispatcher) SendPasswordResetEmail(ctx context.Context, email, token string) {
	d.enqueue(ctx, "password_reset", func() (Message, error) { return d.composer.PasswordReset(email, token) })
}

func (d *Dispatcher) enqueue(ctx context.Context, kind string, compose func() (Message, error)) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	log := slogx.FromContext(ctx)
	if d.closed {
		log.Warn("mail dispatcher closed, dropping email", slog.String("kind", kind))
		return
	}

	// The request context ends with the response; keep its values only.
	select {
	case d.queue <- job{ctx: context.WithoutCancel(ctx), kind: kind, compose: compose}:
	default:
		log.Warn("mail queue full, dropping email", slog.String("kind", kind))
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	ctx, cancel := context.WithTimeout(j.ctx, d.sendTimeout)
	defer cancel()

	msg, err := j.compose()
	if err != nil {
		d.logger.Error("failed to render email", slog.String("kind", j.kind), slog.Any("error", err))
		return
	}
	if err := d.sender.Send(ctx, msg); err != nil {
		d.logger.Error("failed to send email", slog.String("kind", j.kind), slog.Any("error", err))
	}
}

// Shutdown stops accepting mail and waits for queued messages to be sent, or
// for ctx to end.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
