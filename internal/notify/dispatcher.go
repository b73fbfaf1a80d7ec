package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultSendTimeout bounds one detached in-process delivery.
const DefaultSendTimeout = 30 * time.Second

type Dispatcher struct {
	chatOps Sender
	email   Sender
	queue   Enqueuer
	log     *zap.Logger

	sendTimeout time.Duration
	wg          sync.WaitGroup
}

type Option func(*Dispatcher)

// WithQueue routes Dispatch through q instead of an in-process goroutine.
func WithQueue(q Enqueuer) Option {
	return func(d *Dispatcher) { d.queue = q }
}

func WithSendTimeout(t time.Duration) Option {
	return func(d *Dispatcher) {
		if t > 0 {
			d.sendTimeout = t
		}
	}
}

// NewDispatcher wires the two channels. Either may be nil, which reads as
// unconfigured.
func NewDispatcher(chatOps, email Sender, log *zap.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		chatOps:     chatOps,
		email:       email,
		log:         logging.OrNop(log),
		sendTimeout: DefaultSendTimeout,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Deliver attempts both channels concurrently and waits for them.
func (d *Dispatcher) Deliver(ctx context.Context, n Notification) Result {
	var res Result
	var chatFailed, emailFailed bool
	var g errgroup.Group

	g.Go(func() error {
		res.ChatOps, chatFailed = d.send(ctx, d.chatOps, n)
		return nil
	})
	g.Go(func() error {
		res.Email, emailFailed = d.send(ctx, d.email, n)
		return nil
	})
	_ = g.Wait()
	res.Failed = chatFailed || emailFailed

	d.log.Info("notification delivered",
		zap.String("kind", n.Kind),
		zap.String("ref", n.Ref),
		zap.Bool("chat_ops", res.ChatOps),
		zap.Bool("email", res.Email),
		zap.Bool("failed", res.Failed),
	)
	return res
}

// send reports ok when s accepted n, and failed when it tried and errored.
// A skipped channel is neither.
func (d *Dispatcher) send(ctx context.Context, s Sender, n Notification) (ok, failed bool) {
	if s == nil {
		return false, false
	}
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("notification sender panicked", zap.String("channel", s.Name()), zap.Any("panic", r))
			ok, failed = false, true
		}
	}()

	err := s.Send(ctx, n)
	switch {
	case err == nil:
		return true, false
	case errors.Is(err, ErrNotConfigured), errors.Is(err, ErrNothingToSend):
		d.log.Debug("notification channel skipped", zap.String("channel", s.Name()), zap.String("reason", err.Error()))
		return false, false
	default:
		d.log.Warn("notification send failed",
			zap.String("channel", s.Name()),
			zap.String("kind", n.Kind),
			zap.String("ref", n.Ref),
			zap.Error(err),
		)
		return false, true
	}
}

// Dispatch hands n off without waiting for delivery. The queue is preferred;
// if it is absent or rejects the job, delivery runs in a tracked goroutine.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) {
	if d.queue != nil {
		err := d.queue.Enqueue(ctx, n)
		if err == nil {
			return
		}
		d.log.Warn("notification enqueue failed, delivering in-process", zap.String("ref", n.Ref), zap.Error(err))
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.sendTimeout)
		defer cancel()
		d.Deliver(sendCtx, n)
	}()
}

// Wait blocks until every in-process delivery started by Dispatch finishes.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
