package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suPer8Hu/goldsmith-storefront/internal/app"
	"github.com/suPer8Hu/goldsmith-storefront/internal/config"
	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"github.com/suPer8Hu/goldsmith-storefront/internal/notify"
	"github.com/suPer8Hu/goldsmith-storefront/internal/store/rabbitmq"
	"go.uber.org/zap"
)

// maxAttempts bounds redeliveries through the retry queue before a job is
// parked in the DLQ.
const maxAttempts = 3

func workerConcurrency(n int) int {
	if n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if cfg.RabbitURL == "" {
		logger.Fatal("RABBIT_URL is required for the worker")
	}

	chatOps, email := app.Senders(cfg)
	dispatcher := notify.NewDispatcher(chatOps, email, logger.Named("notify"))

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		logger.Fatal("rabbit dial", zap.Error(err))
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("rabbit channel", zap.Error(err))
	}
	defer ch.Close()

	if err := rabbitmq.DeclareTopology(ch, cfg.RabbitQueue); err != nil {
		logger.Fatal("queue declare", zap.Error(err))
	}

	//  strict concurrency control
	concurrency := workerConcurrency(cfg.WorkerConcurrency)

	if err := ch.Qos(concurrency, 0, false); err != nil {
		logger.Fatal("qos", zap.Error(err))
	}

	msgs, err := ch.Consume(cfg.RabbitQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatal("consume", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("worker started", zap.String("queue", cfg.RabbitQueue), zap.Int("concurrency", concurrency))

	// workers publish retries on the consuming channel
	var pubMu sync.Mutex
	h := &jobHandler{
		deliver: dispatcher.Deliver,
		retry: func(d amqp.Delivery, attempt int) error {
			pubMu.Lock()
			defer pubMu.Unlock()
			return rabbitmq.Retry(context.WithoutCancel(ctx), ch, cfg.RabbitQueue, d, attempt)
		},
		log:      logger,
		timeout:  notify.DefaultSendTimeout,
		attempts: maxAttempts,
	}
	pool := newPool(concurrency, h)

	// dispatcher
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutting down")
			pool.Close()
			return

		case d, ok := <-msgs:
			if !ok {
				logger.Warn("delivery channel closed")
				pool.Close()
				return
			}
			pool.Submit(d)
		}
	}
}

// acknowledger is the subset of amqp.Delivery a handled job needs.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type jobHandler struct {
	deliver  func(ctx context.Context, n notify.Notification) notify.Result
	retry    func(d amqp.Delivery, attempt int) error
	log      *zap.Logger
	timeout  time.Duration
	attempts int
}

// handle delivers one job. Undecodable bodies go straight to the DLQ. A job
// that every channel skipped or failed, with at least one failure, goes to
// the retry queue until attempts run out.
func (h *jobHandler) handle(workerID int, d amqp.Delivery, ack acknowledger) {
	job, err := notify.DecodeJob(d.Body)
	if err != nil {
		h.log.Warn("bad message", zap.Int("worker", workerID), zap.Error(err))
		_ = ack.Nack(false, false)
		return
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	res := h.deliver(ctx, job.Notification)
	cancel()

	fields := []zap.Field{
		zap.Int("worker", workerID),
		zap.String("job", job.ID),
		zap.String("kind", job.Notification.Kind),
		zap.String("ref", job.Notification.Ref),
		zap.Duration("cost", time.Since(start)),
	}

	if res.ChatOps || res.Email || !res.Failed {
		if err := ack.Ack(false); err != nil {
			h.log.Warn("ack failed", append(fields, zap.Error(err))...)
		}
		return
	}

	attempt := rabbitmq.Attempt(d.Headers) + 1
	if attempt < h.attempts && h.retry != nil {
		if err := h.retry(d, attempt); err == nil {
			h.log.Info("job scheduled for retry", append(fields, zap.Int("attempt", attempt))...)
			_ = ack.Ack(false)
			return
		}
	}
	h.log.Warn("job failed, dead-lettered", append(fields, zap.Int("attempt", attempt))...)
	_ = ack.Nack(false, false)
}
