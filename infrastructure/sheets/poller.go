package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sqlite"
	"logidash/models"
)

const (
	TriggerStartup  = "startup"
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"

	syncRunsKept = 500
)

// Poller refreshes the Store on a cron schedule.
type Poller struct {
	client   *Client
	sources  []Source
	store    *Store
	db       *sqlite.DB
	tenant   dashboard.Tenant
	schedule string
	timeout  time.Duration

	cron *cron.Cron

	// serializes cron cycles with RefreshNow
	cycleMu sync.Mutex

	mu        sync.Mutex
	listeners []func(*dashboard.Snapshot)
}

// NewPoller wires a poller. db may be nil, in which case sync runs are not recorded.
func NewPoller(client *Client, sources []Source, store *Store, db *sqlite.DB, tenant dashboard.Tenant, schedule string) *Poller {
	timeout := 60 * time.Second
	if client != nil && client.HTTP != nil && client.HTTP.Timeout > 0 {
		timeout = client.HTTP.Timeout + 5*time.Second
	}
	return &Poller{
		client:   client,
		sources:  sources,
		store:    store,
		db:       db,
		tenant:   tenant,
		schedule: schedule,
		timeout:  timeout,
	}
}

// OnRefresh registers fn to run after every cycle with the new snapshot.
func (p *Poller) OnRefresh(fn func(*dashboard.Snapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Start kicks off the first cycle in the background and schedules the rest.
func (p *Poller) Start() error {
	logger := cron.PrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	if _, err := c.AddFunc(p.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		p.runCycle(ctx, TriggerSchedule)
	}); err != nil {
		return fmt.Errorf("schedule poll %q: %w", p.schedule, err)
	}
	p.cron = c

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		p.runCycle(ctx, TriggerStartup)
	}()

	c.Start()
	slog.Info("sheet poller started", slog.String("schedule", p.schedule), slog.Int("sources", len(p.sources)))
	return nil
}

// Stop halts the schedule and waits for a running cycle to finish.
func (p *Poller) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
	p.cycleMu.Lock()
	p.cycleMu.Unlock()
}

// RefreshNow runs a cycle immediately and returns its snapshot.
func (p *Poller) RefreshNow(ctx context.Context) *dashboard.Snapshot {
	return p.runCycle(ctx, TriggerManual)
}

func (p *Poller) runCycle(ctx context.Context, trigger string) *dashboard.Snapshot {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	started := time.Now()
	tables, statuses := p.client.FetchAll(ctx, p.sources)
	snap := dashboard.Build(tables, dashboard.Options{Tenant: p.tenant, Now: started})
	snap.Sources = statuses

	run := models.SyncRun{
		TriggeredBy: trigger,
		StartedAt:   started,
		FinishedAt:  time.Now(),
	}
	var firstErr string
	for _, st := range statuses {
		run.TotalRows += st.Rows
		if st.OK() {
			run.SourcesOK++
			continue
		}
		run.SourcesFailed++
		if firstErr == "" {
			firstErr = st.Err
		}
	}
	run.ErrorText = firstErr

	// Partial failures degrade silently; only a cycle where nothing loaded
	// is reported as a connection error.
	connErr := ""
	if len(statuses) > 0 && run.SourcesOK == 0 {
		connErr = firstErr
	}
	p.store.Replace(snap, connErr)

	if run.SourcesFailed > 0 {
		slog.Warn("sheet poll degraded",
			slog.String("trigger", trigger),
			slog.Int("failed", run.SourcesFailed),
			slog.Int("ok", run.SourcesOK))
	}

	if p.db != nil {
		if err := RecordSyncRun(ctx, p.db, run); err != nil {
			slog.Error("record sync run failed", slog.Any("err", err))
		} else if err := PruneSyncRuns(ctx, p.db, syncRunsKept); err != nil {
			slog.Error("prune sync runs failed", slog.Any("err", err))
		}
	}

	p.mu.Lock()
	listeners := append([]func(*dashboard.Snapshot){}, p.listeners...)
	p.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
	return snap
}
