// Package feed maintains a live view of one day's meal logs. While a
// scan is pending or an ingredient image is still generating, the feed
// is re-fetched on a fixed interval; otherwise the poller stays idle.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/plateful/mealscan/internal/config"
	"github.com/plateful/mealscan/internal/domain"
)

// feedAPI is the slice of the backend client the poller needs.
type feedAPI interface {
	GetMeals(ctx context.Context, dateISO string) (domain.DailyFeed, error)
}

// Snapshot is the poller's current view of the day. On fetch failure
// the previous feed is kept and Err carries the failure; a later
// successful fetch clears it.
type Snapshot struct {
	Feed      domain.DailyFeed
	Err       error
	FetchedAt time.Time
}

// Poller re-fetches a day's feed while something in it is still
// settling server-side.
type Poller struct {
	api   feedAPI
	clock clockwork.Clock

	interval       time.Duration
	imageGenBudget time.Duration

	log *slog.Logger

	mu         sync.Mutex
	dateISO    string
	openMealID string
	foreground bool
	active     bool
	stop       chan struct{}
	genAnchor  time.Time
	snap       Snapshot
	onUpdate   func(Snapshot)
}

// NewPoller builds an idle poller. The app starts in the foreground.
func NewPoller(api feedAPI, cfg config.FeedConfig, clock clockwork.Clock, logger *slog.Logger) *Poller {
	return &Poller{
		api:            api,
		clock:          clock,
		interval:       cfg.PollInterval,
		imageGenBudget: cfg.ImageGenBudget,
		log:            logger.With("service", "feed"),
		foreground:     true,
	}
}

// OnUpdate registers a callback invoked after every fetch, successful
// or not, with the resulting snapshot. Must be set before polling starts.
func (p *Poller) OnUpdate(fn func(Snapshot)) {
	p.mu.Lock()
	p.onUpdate = fn
	p.mu.Unlock()
}

// SetDate switches the poller to a day and fetches it immediately.
func (p *Poller) SetDate(ctx context.Context, dateISO string) Snapshot {
	p.mu.Lock()
	p.dateISO = dateISO
	p.mu.Unlock()
	return p.Refresh(ctx)
}

// Snapshot returns the current view without fetching.
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// IsActive reports whether the polling loop is running.
func (p *Poller) IsActive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Refresh fetches the feed once and re-evaluates whether the polling
// loop should run. A failed fetch keeps the stale feed visible.
func (p *Poller) Refresh(ctx context.Context) Snapshot {
	p.mu.Lock()
	date := p.dateISO
	p.mu.Unlock()

	feed, err := p.api.GetMeals(ctx, date)

	p.mu.Lock()
	if err != nil {
		p.log.Warn("feed fetch failed", slog.String("date", date), slog.String("error", err.Error()))
		p.snap.Err = err
		p.snap.FetchedAt = p.clock.Now()
	} else {
		domain.SortLogs(feed.Logs)
		p.snap = Snapshot{Feed: feed, FetchedAt: p.clock.Now()}
	}
	snap := p.snap
	notify := p.onUpdate
	p.reconcileLocked()
	p.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
	return snap
}

// Stop halts the polling loop and resets the image-generation budget,
// so a later Start watches generation with a fresh window.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopLocked()
	p.genAnchor = time.Time{}
	p.mu.Unlock()
}

// OpenMeal marks a meal as open in the UI. An open meal with a
// generating ingredient keeps the poller alive within the budget.
func (p *Poller) OpenMeal(mealID string) {
	p.mu.Lock()
	if p.openMealID != mealID {
		p.openMealID = mealID
		p.genAnchor = time.Time{}
	}
	p.reconcileLocked()
	p.mu.Unlock()
}

// CloseMeal clears the open meal.
func (p *Poller) CloseMeal() {
	p.mu.Lock()
	p.openMealID = ""
	p.genAnchor = time.Time{}
	p.reconcileLocked()
	p.mu.Unlock()
}

// OnForeground resumes the poller's work after the app returns to the
// foreground, starting with an immediate fetch.
func (p *Poller) OnForeground(ctx context.Context) Snapshot {
	p.mu.Lock()
	p.foreground = true
	p.mu.Unlock()
	return p.Refresh(ctx)
}

// OnBackground halts polling until the app is foregrounded again.
func (p *Poller) OnBackground() {
	p.mu.Lock()
	p.foreground = false
	p.stopLocked()
	p.mu.Unlock()
}

// --- internals ---

// shouldPollLocked applies the liveness rule: poll while any log is
// pending a scan, or while the open meal has a generating ingredient
// and the generation budget has not run out.
func (p *Poller) shouldPollLocked() bool {
	if !p.foreground {
		return false
	}

	for _, log := range p.snap.Feed.Logs {
		if log.Status == domain.MealStatusPendingScan {
			return true
		}
	}

	if p.openMealID == "" {
		return false
	}
	open, ok := findLog(p.snap.Feed.Logs, p.openMealID)
	if !ok || !open.HasGeneratingIngredient() {
		p.genAnchor = time.Time{}
		return false
	}

	if p.genAnchor.IsZero() {
		p.genAnchor = p.clock.Now()
	}
	return p.clock.Now().Sub(p.genAnchor) < p.imageGenBudget
}

func (p *Poller) reconcileLocked() {
	if p.shouldPollLocked() {
		p.startLocked()
	} else {
		p.stopLocked()
	}
}

func (p *Poller) startLocked() {
	if p.active {
		return
	}
	p.active = true
	p.stop = make(chan struct{})
	go p.run(p.stop)
}

func (p *Poller) stopLocked() {
	if !p.active {
		return
	}
	p.active = false
	close(p.stop)
}

func (p *Poller) run(stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-p.clock.After(p.interval):
		}
		select {
		case <-stop:
			return
		default:
		}
		p.Refresh(context.Background())
	}
}

func findLog(logs []domain.MealLog, mealID string) (domain.MealLog, bool) {
	for _, log := range logs {
		if log.ID == mealID {
			return log, true
		}
	}
	return domain.MealLog{}, false
}
