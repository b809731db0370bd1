package services

import (
	"context"
	"errors"
	"fmt"
)

// compensation undoes one persisted step.
type compensation struct {
	name string
	undo func(ctx context.Context) error
}

// saga is a compensation log for a sequence of writes that share no transaction.
// Steps are undone in reverse order of recording.
type saga struct {
	steps []compensation
}

func (s *saga) record(name string, undo func(ctx context.Context) error) {
	s.steps = append(s.steps, compensation{name: name, undo: undo})
}

// compensate runs every recorded undo, newest first. It keeps going past failures
// and returns them joined.
func (s *saga) compensate(ctx context.Context) error {
	var errs []error
	for i := len(s.steps) - 1; i >= 0; i-- {
		step := s.steps[i]
		if err := step.undo(ctx); err != nil {
			errs = append(errs, fmt.Errorf("undo %s: %w", step.name, err))
		}
	}
	s.steps = nil
	return errors.Join(errs...)
}

func (s *saga) len() int {
	return len(s.steps)
}
