package signal

import (
	"context"
	"time"

	"github.com/birdayz/kflow/kchan"
)

type Mixer struct {
	Left, Right *kchan.Receiver[float64]
	Out         *kchan.Sender[float64]
}

func (m *Mixer) Step(_ context.Context, left, right float64) (float64, error) {
	return left * right, nil
}

type Timer struct {
	Ticks   *kchan.Receiver[time.Duration]
	elapsed time.Duration
	count   int
}

func (t *Timer) Step(ctx context.Context, d time.Duration) error {
	t.elapsed += d
	t.count++
	return nil
}
