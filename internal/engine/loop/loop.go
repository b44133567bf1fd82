// Package loop drives a per-frame callback from a display-synchronized frame source.
package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spacefolio/internal/logger"
)

// ErrClosed is returned by a FrameSource when the host has gone away
// (window closed, quit requested). The loop treats it as a normal stop.
var ErrClosed = errors.New("loop: frame source closed")

// FrameSource blocks until the next frame should run.
type FrameSource interface {
	Next(ctx context.Context) error
}

// FrameSourceFunc adapts a function to FrameSource.
type FrameSourceFunc func(ctx context.Context) error

// Next calls f.
func (f FrameSourceFunc) Next(ctx context.Context) error { return f(ctx) }

// TickFunc is the per-frame callback.
type TickFunc func() error

// Loop runs a TickFunc once per frame until stopped.
//
// Run must be called from the goroutine that owns the rendering context.
// Stop may be called from any goroutine.
type Loop struct {
	tick   TickFunc
	source FrameSource

	stop     chan struct{}
	stopOnce sync.Once

	frames      uint64
	statsPeriod time.Duration
}

// New creates a loop. Nothing runs until Run is called.
func New(tick TickFunc, source FrameSource) *Loop {
	return &Loop{
		tick:        tick,
		source:      source,
		stop:        make(chan struct{}),
		statsPeriod: time.Second,
	}
}

// Run ticks until Stop is called, ctx is cancelled, or the frame source
// closes; all three return nil. A failing tick is logged and ends the loop:
// nothing reschedules after an error.
func (l *Loop) Run(ctx context.Context) error {
	log := logger.Named("loop")
	log.Info("render loop started")

	statsStart := time.Now()
	statsFrames := uint64(0)

	for {
		select {
		case <-ctx.Done():
			log.Info("render loop cancelled", zap.Uint64("frames", l.frames))
			return nil
		case <-l.stop:
			log.Info("render loop stopped", zap.Uint64("frames", l.frames))
			return nil
		default:
		}

		if err := l.tick(); err != nil {
			log.Error("frame callback failed, animation halted",
				zap.Uint64("frame", l.frames),
				zap.Error(err),
			)
			return fmt.Errorf("frame %d: %w", l.frames, err)
		}
		l.frames++
		statsFrames++

		if elapsed := time.Since(statsStart); elapsed >= l.statsPeriod {
			log.Debug("frame stats",
				zap.Uint64("frames", statsFrames),
				zap.Float64("fps", float64(statsFrames)/elapsed.Seconds()),
			)
			statsStart = time.Now()
			statsFrames = 0
		}

		if err := l.source.Next(ctx); err != nil {
			if errors.Is(err, ErrClosed) || errors.Is(err, context.Canceled) {
				log.Info("frame source closed", zap.Uint64("frames", l.frames))
				return nil
			}
			log.Error("frame source failed",
				zap.Uint64("frame", l.frames),
				zap.Error(err),
			)
			return fmt.Errorf("waiting for frame %d: %w", l.frames, err)
		}
	}
}

// Stop ends the loop before its next tick. Safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Frames returns the number of completed ticks. Only meaningful from the
// Run goroutine or after Run has returned.
func (l *Loop) Frames() uint64 {
	return l.frames
}
