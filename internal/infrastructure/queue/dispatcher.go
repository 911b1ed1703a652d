package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/urbaneye/civic-issue-system/internal/api/metrics"
	"github.com/urbaneye/civic-issue-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes issue activity to a fixed set of workers using consistent
// hashing on the issue id, so entries for one issue are always recorded in the
// order they were enqueued. Recording happens off the request path; a slow
// audit write never delays a response.
type Dispatcher struct {
	workers []chan ports.IssueActivityInput
	service ports.ActivityService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.IssueActivityInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.IssueActivityInput, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. They stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an activity entry to the worker owning its issue.
func (d *Dispatcher) Enqueue(in ports.IssueActivityInput) {
	idx := d.shardIndex(in.IssueID)
	d.workers[idx] <- in
	metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

func (d *Dispatcher) shardIndex(issueID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(issueID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.IssueActivityInput) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			err := d.service.Process(ctx, in)
			metrics.ActivityProcessingDuration.WithLabelValues(in.Kind).Observe(time.Since(start).Seconds())
			if err != nil {
				d.log.Error().Err(err).
					Str("issue_id", in.IssueID).
					Str("kind", in.Kind).
					Int("worker_id", id).
					Msg("activity recording failed")
			}
		}
	}
}
