package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"nearzy/internal/core/logger"
	"nearzy/internal/features/orders/domain"
	"nearzy/internal/features/orders/ports"

	"go.uber.org/zap"
)

// Dispatcher applies lifecycle events.
type Dispatcher interface {
	Handle(ctx context.Context, event domain.AdvanceStatus) (*domain.Order, error)
}

// Progressor advances tracked orders on a fixed interval. Each order has at
// most one job, and the job ends once the order is delivered.
type Progressor struct {
	dispatcher Dispatcher
	scheduler  ports.Scheduler
	interval   time.Duration
	timeout    time.Duration

	mu   sync.Mutex
	jobs map[string]func()
}

// NewProgressor creates a Progressor that dispatches one AdvanceStatus per interval.
func NewProgressor(dispatcher Dispatcher, scheduler ports.Scheduler, interval time.Duration) *Progressor {
	return &Progressor{
		dispatcher: dispatcher,
		scheduler:  scheduler,
		interval:   interval,
		timeout:    interval,
		jobs:       make(map[string]func()),
	}
}

// Start begins tracking orderID. It reports false when a job already runs.
func (p *Progressor) Start(orderID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.jobs[orderID]; ok {
		return false
	}
	p.jobs[orderID] = p.scheduler.Every(p.interval, func() { p.tick(orderID) })

	logger.Named("orders").Debug("Tracking started", zap.String("order_id", orderID))
	return true
}

// Stop cancels the job for orderID. It reports whether a job was running.
func (p *Progressor) Stop(orderID string) bool {
	p.mu.Lock()
	cancel, ok := p.jobs[orderID]
	delete(p.jobs, orderID)
	p.mu.Unlock()

	if ok {
		cancel()
		logger.Named("orders").Debug("Tracking stopped", zap.String("order_id", orderID))
	}
	return ok
}

// StopAll cancels every job.
func (p *Progressor) StopAll() {
	p.mu.Lock()
	jobs := p.jobs
	p.jobs = make(map[string]func())
	p.mu.Unlock()

	for _, cancel := range jobs {
		cancel()
	}
}

// Running reports whether orderID is being tracked.
func (p *Progressor) Running(orderID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.jobs[orderID]
	return ok
}

func (p *Progressor) tick(orderID string) {
	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	order, err := p.dispatcher.Handle(ctx, domain.AdvanceStatus{OrderID: orderID})
	switch {
	case errors.Is(err, domain.ErrAlreadyDelivered), errors.Is(err, ErrOrderNotFound):
		p.Stop(orderID)
	case err != nil:
		logger.Named("orders").Warn("Failed to advance order",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	case order.Delivered():
		p.Stop(orderID)
	}
}
