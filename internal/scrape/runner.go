package scrape

import (
	"context"
	"log/slog"
)

// Job is one unit of deferred scrape work.
type Job func(ctx context.Context)

// Runner serializes scrape jobs through a single worker, so two triggers can
// never interleave reads and writes of the shared stores. Handlers enqueue
// and return immediately; the worker drains in order.
type Runner struct {
	jobs chan Job
	done chan struct{}
	log  *slog.Logger
}

func NewRunner(ctx context.Context, size int, log *slog.Logger) *Runner {
	r := &Runner{
		jobs: make(chan Job, size),
		done: make(chan struct{}),
		log:  log,
	}
	go r.work(ctx)
	return r
}

func (r *Runner) work(ctx context.Context) {
	defer close(r.done)
	for job := range r.jobs {
		select {
		case <-ctx.Done():
			r.log.Info("runner context canceled, dropping remaining jobs")
			return
		default:
		}
		job(ctx)
	}
}

// Enqueue hands a job to the worker without blocking. A full queue drops the
// job; the trigger was fire-and-forget to begin with.
func (r *Runner) Enqueue(job Job) bool {
	select {
	case r.jobs <- job:
		return true
	default:
		r.log.Warn("job queue full, dropping scrape job")
		return false
	}
}

// Close stops accepting jobs and waits for the worker to finish the backlog.
func (r *Runner) Close() {
	close(r.jobs)
	<-r.done
}
