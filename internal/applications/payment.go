package applications

import (
	"context"

	"admitportal-backend/internal/shared/telemetry"
)

// PaymentProvider charges the application fee. The portal only needs a
// success/failure signal; settlement details stay with the provider.
type PaymentProvider interface {
	Charge(ctx context.Context, applicationID string, amount float64) error
}

// SimulatedProvider approves every charge. Used outside production until a
// real gateway is wired in.
type SimulatedProvider struct{}

func (SimulatedProvider) Charge(ctx context.Context, applicationID string, amount float64) error {
	telemetry.Info("payment.simulated", map[string]any{
		"application_id": applicationID,
		"amount":         amount,
	})
	return nil
}
