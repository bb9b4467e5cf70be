package scheduler

import (
	"github.com/pixil98/go-errors"
)

// Drain resumes live scripts in ascending handle order for up to passes
// passes. A script that has yielded yieldCap times during this drain is
// skipped for the rest of it. Draining stops early once nothing is live or a
// pass makes no progress. Script errors are collected and do not stop other
// scripts.
func (s *Scheduler) Drain(passes, yieldCap int) error {
	el := errors.NewErrorList()
	yielded := map[int]int{}

	for pass := 0; pass < passes; pass++ {
		handles := s.ActiveHandles()
		if len(handles) == 0 {
			break
		}

		progressed := false
		for _, h := range handles {
			rec, ok := s.records[h]
			if !ok || rec.state == StateRunning {
				continue
			}
			if yieldCap > 0 && yielded[h] >= yieldCap {
				continue
			}

			step, err := s.Resume(h)
			progressed = true
			el.Add(err)
			if step == StepYielded {
				yielded[h]++
			}
		}

		if !progressed {
			break
		}
	}

	return el.Err()
}
