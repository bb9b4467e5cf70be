package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingManager struct {
	ticks  int
	failAt int
	closed bool
	cancel context.CancelFunc
	stopAt int
}

func (m *countingManager) Tick(context.Context) error {
	m.ticks++
	if m.failAt > 0 && m.ticks >= m.failAt {
		return errors.New("manager failed")
	}
	if m.stopAt > 0 && m.ticks >= m.stopAt {
		m.cancel()
	}
	return nil
}

func (m *countingManager) Close() {
	m.closed = true
}

type plainManager struct {
	ticks int
}

func (m *plainManager) Tick(context.Context) error {
	m.ticks++
	return nil
}

func TestDriver_Tick(t *testing.T) {
	tests := map[string]struct {
		failAt    int
		expErr    string
		expSecond int
	}{
		"all managers tick": {expSecond: 1},
		"failure stops the tick": {
			failAt:    1,
			expErr:    "manager failed",
			expSecond: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			first := &countingManager{failAt: tt.failAt}
			second := &plainManager{}
			d := NewDriver([]Manager{first, second})

			err := d.Tick(context.Background())
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "second ticks", second.ticks, tt.expSecond)
		})
	}
}

func TestDriver_StartClosesManagers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := &countingManager{cancel: cancel, stopAt: 3}
	d := NewDriver([]Manager{m}, WithTickLength(time.Millisecond))

	if err := d.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "ticks", m.ticks >= 3, true)
	testutil.AssertEqual(t, "closed", m.closed, true)
}

func TestDriver_StartReturnsManagerError(t *testing.T) {
	m := &countingManager{failAt: 2}
	d := NewDriver([]Manager{m}, WithTickLength(time.Millisecond))

	testutil.AssertErrorContains(t, d.Start(context.Background()), "manager failed")
	testutil.AssertEqual(t, "closed", m.closed, true)
}
