package main

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// pool fans deliveries out to a fixed set of workers.
type pool struct {
	jobs chan amqp.Delivery
	wg   sync.WaitGroup
}

func newPool(concurrency int, h *jobHandler) *pool {
	p := &pool{jobs: make(chan amqp.Delivery, concurrency*2)}
	p.wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer p.wg.Done()
			for d := range p.jobs {
				h.handle(workerID, d, d)
			}
		}(i)
	}
	return p
}

func (p *pool) Submit(d amqp.Delivery) { p.jobs <- d }

// Close stops intake and waits for in-flight jobs.
func (p *pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
