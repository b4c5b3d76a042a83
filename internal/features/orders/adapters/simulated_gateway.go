package adapters

import (
	"context"
	"time"

	"nearzy/internal/core/logger"
	"nearzy/internal/features/orders/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimulatedGateway approves every charge after a fixed processing delay.
type SimulatedGateway struct {
	delay time.Duration
}

// NewSimulatedGateway creates a gateway that takes delay per charge.
func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{delay: delay}
}

// Charge waits for the processing delay and returns a payment reference.
func (g *SimulatedGateway) Charge(ctx context.Context, charge domain.Charge) (string, error) {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	ref := "pay_" + uuid.NewString()
	logger.Named("payments").Info("Payment approved",
		zap.String("reference", ref),
		zap.String("method", string(charge.Method)),
		zap.Int("amount", charge.Amount),
		zap.String("receipt", charge.Receipt),
	)
	return ref, nil
}
