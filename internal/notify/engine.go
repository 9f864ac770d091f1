package notify

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/dayplan/internal/model"
)

// Event is one fired notification, handed to the delivery sink.
type Event struct {
	RuleID       string
	Message      string
	LinkedItemID string
	FiredAt      time.Time
}

// Source supplies the rules and quiet configuration for each tick.
type Source interface {
	ActiveRules(ctx context.Context) ([]model.NotificationRule, error)
	QuietConfig(ctx context.Context) (model.QuietConfig, error)
}

// Ledger records fires so repeated ticks within the same matching window do
// not deliver duplicates. Keeping it outside the evaluator keeps ShouldFire
// a pure function of its inputs.
type Ledger interface {
	LastFired(ctx context.Context, ruleID string) (*time.Time, error)
	MarkFired(ctx context.Context, ruleID string, at time.Time) error
}

type Options struct {
	BufferSize   int
	TickInterval time.Duration
	Now          func() time.Time
}

// Engine evaluates every active rule once per tick on a single goroutine,
// so concurrent ticks cannot race on delivery. Events are emitted on a
// bounded channel with a non-blocking send; a slow consumer loses events
// rather than stalling the clock.
type Engine struct {
	src      Source
	ledger   Ledger
	loc      *time.Location
	log      *zap.Logger
	out      chan Event
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	dropped uint64
}

func NewEngine(src Source, ledger Ledger, loc *time.Location, log *zap.Logger, opts Options) (*Engine, error) {
	if src == nil {
		return nil, errors.New("notify: nil source")
	}
	if ledger == nil {
		return nil, errors.New("notify: nil ledger")
	}
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = 1
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		src:      src,
		ledger:   ledger,
		loc:      loc,
		log:      log,
		out:      make(chan Event, opts.BufferSize),
		interval: opts.TickInterval,
		now:      opts.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.tick(context.Background(), e.now())
		case <-e.stopCh:
			return
		}
	}
}

func (e *Engine) tick(ctx context.Context, now time.Time) {
	quiet, err := e.src.QuietConfig(ctx)
	if err != nil {
		e.log.Error("load quiet config", zap.Error(err))
		return
	}
	rules, err := e.src.ActiveRules(ctx)
	if err != nil {
		e.log.Error("load notification rules", zap.Error(err))
		return
	}

	for _, rule := range rules {
		if !ShouldFire(rule, quiet, now, e.loc) {
			continue
		}
		fired, err := e.alreadyFired(ctx, rule, now)
		if err != nil {
			e.log.Error("read fire ledger", zap.String("rule", rule.ID), zap.Error(err))
			continue
		}
		if fired {
			continue
		}

		ev := Event{
			RuleID:       rule.ID,
			Message:      rule.Message,
			LinkedItemID: rule.LinkedItemID,
			FiredAt:      now,
		}
		select {
		case e.out <- ev:
		default:
			atomic.AddUint64(&e.dropped, 1)
			e.log.Warn("event dropped, consumer too slow", zap.String("rule", rule.ID))
		}
		if err := e.ledger.MarkFired(ctx, rule.ID, now); err != nil {
			e.log.Error("record fire", zap.String("rule", rule.ID), zap.Error(err))
		}
		e.log.Info("notification fired",
			zap.String("rule", rule.ID),
			zap.String("type", string(rule.Type)),
		)
	}
}

// alreadyFired applies the caller-side de-duplication policy: a time rule
// fires at most once per local minute, day and date rules at most once per
// local day.
func (e *Engine) alreadyFired(ctx context.Context, rule model.NotificationRule, now time.Time) (bool, error) {
	last, err := e.ledger.LastFired(ctx, rule.ID)
	if err != nil {
		return false, err
	}
	if last == nil {
		return false, nil
	}
	localLast := last.In(e.loc)
	localNow := now.In(e.loc)
	switch rule.Type {
	case model.NotificationTime:
		return localLast.Truncate(time.Minute).Equal(localNow.Truncate(time.Minute)), nil
	default:
		return model.DateOf(localLast).Equal(model.DateOf(localNow)), nil
	}
}
