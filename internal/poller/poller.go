// Package poller drives the client side of the render lifecycle: it
// repeatedly fetches external job status at a fixed interval and reconciles
// it into the local RenderJob record until the job reaches a terminal state.
package poller

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"videocanvas/api-gateway/internal/renderer"
	"videocanvas/api-gateway/models"
)

// StatusFetcher fetches the external status of one render job.
type StatusFetcher interface {
	GetStatus(ctx context.Context, externalJobID string) (renderer.StatusResponse, error)
}

// RenderStore persists reconciled job records and lists jobs still in flight.
type RenderStore interface {
	UpdateRenderJob(ctx context.Context, job models.RenderJob) error
	ListActiveRenderJobs(ctx context.Context) ([]models.RenderJob, error)
}

// TickSource produces the poll schedule. It returns the tick channel and a
// release function. Tests substitute a channel they drive by hand.
type TickSource func(interval time.Duration) (<-chan time.Time, func())

func defaultTicks(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// Poller watches in-flight render jobs. Each watched job gets its own
// schedule; one job's fetch-and-reconcile never delays another's.
type Poller struct {
	fetcher  StatusFetcher
	store    RenderStore
	interval time.Duration
	log      *logrus.Logger
	ticks    TickSource

	mu       sync.Mutex
	watching map[string]struct{}
	quit     chan struct{}
	wg       sync.WaitGroup
}

// New creates a poller with the given fixed poll interval.
func New(fetcher StatusFetcher, store RenderStore, interval time.Duration, log *logrus.Logger) *Poller {
	return &Poller{
		fetcher:  fetcher,
		store:    store,
		interval: interval,
		log:      log,
		ticks:    defaultTicks,
		watching: make(map[string]struct{}),
		quit:     make(chan struct{}),
	}
}

// SetTickSource replaces the poll schedule. Call before Watch.
func (p *Poller) SetTickSource(ticks TickSource) {
	p.ticks = ticks
}

// Watch starts polling a job until it reaches a terminal state. Jobs already
// terminal, or already being watched, are ignored.
func (p *Poller) Watch(job models.RenderJob) {
	if job.Status.IsTerminal() {
		return
	}
	key := job.ID.String()

	p.mu.Lock()
	if _, ok := p.watching[key]; ok {
		p.mu.Unlock()
		return
	}
	p.watching[key] = struct{}{}
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			delete(p.watching, key)
			p.mu.Unlock()
		}()
		p.run(job)
	}()
}

// Resume re-watches every non-terminal job in the store. Called at startup so
// jobs submitted before a restart keep progressing.
func (p *Poller) Resume(ctx context.Context) error {
	jobs, err := p.store.ListActiveRenderJobs(ctx)
	if err != nil {
		return err
	}
	for _, job := range jobs {
		p.Watch(job)
	}
	p.log.WithField("count", len(jobs)).Info("Resumed polling of in-flight renders")
	return nil
}

// Stop halts all polling loops and waits for them to exit.
func (p *Poller) Stop() {
	close(p.quit)
	p.wg.Wait()
}

func (p *Poller) run(job models.RenderJob) {
	ticks, release := p.ticks(p.interval)
	defer release()

	for {
		select {
		case <-p.quit:
			return
		case <-ticks:
			remote, err := p.fetcher.GetStatus(context.Background(), job.ExternalJobID)
			if err != nil {
				// A failed tick keeps the last known state; the job is
				// retried on the next tick.
				p.log.WithFields(logrus.Fields{
					"render_id":       job.ID,
					"external_job_id": job.ExternalJobID,
					"error":           err.Error(),
				}).Warn("Render status poll failed")
				continue
			}

			next, changed := Reconcile(job, remote)
			if changed {
				if err := p.store.UpdateRenderJob(context.Background(), next); err != nil {
					p.log.WithFields(logrus.Fields{
						"render_id": job.ID,
						"error":     err.Error(),
					}).Warn("Failed to persist render status update")
					continue
				}
			}
			job = next

			if job.Status.IsTerminal() {
				p.log.WithFields(logrus.Fields{
					"render_id": job.ID,
					"status":    job.Status,
				}).Info("Render reached terminal state; polling stopped")
				return
			}
		}
	}
}

// Reconcile overwrites a local job record from a freshly fetched external
// status. The external API reports progress as a 0-1 fraction; the record
// stores 0-100. Progress never regresses while the job is non-terminal, and
// entering failed leaves progress at its last observed value. The output URL
// is recorded once, at the transition to done.
func Reconcile(job models.RenderJob, remote renderer.StatusResponse) (models.RenderJob, bool) {
	next := job
	next.Status = models.RenderStatus(remote.Status)

	switch {
	case next.Status == models.RenderFailed:
		// Keep last observed progress.
	default:
		progress := int(math.Round(remote.Progress * 100))
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
		if progress > next.Progress {
			next.Progress = progress
		}
	}

	if next.Status == models.RenderDone && next.OutputURL == nil && remote.URL != "" {
		url := remote.URL
		next.OutputURL = &url
	}

	changed := next.Status != job.Status || next.Progress != job.Progress || next.OutputURL != job.OutputURL
	return next, changed
}
