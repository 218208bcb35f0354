package report

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Sender delivers a completed report over its channels. Implemented by
// Notifier.
type Sender interface {
	Send(rep *model.MigrationReport)
}

type job struct {
	id     string
	report *model.MigrationReport
}

// Dispatcher queues completed reports for background delivery. Dispatch
// never blocks the migration that produced the report: a full queue drops
// the report with a log line rather than stalling the upload. Delivery
// order is guaranteed per report, not across concurrent uploads.
type Dispatcher struct {
	jobs      chan job
	closeChan chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	sender    Sender
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with the given queue capacity and
// starts its delivery workers.
func NewDispatcher(sender Sender, queueSize, workers int, log zerolog.Logger) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}

	d := &Dispatcher{
		jobs:      make(chan job, queueSize),
		closeChan: make(chan struct{}),
		sender:    sender,
		log:       log,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Dispatch enqueues a report for delivery and returns immediately.
func (d *Dispatcher) Dispatch(rep *model.MigrationReport) {
	j := job{id: uuid.New().String(), report: rep}

	select {
	case <-d.closeChan:
		d.log.Warn().Str("job_id", j.id).Str("filename", rep.Filename).Msg("dispatcher closed, dropping report")
	case d.jobs <- j:
		d.log.Debug().Str("job_id", j.id).Str("filename", rep.Filename).Msg("report queued")
	default:
		d.log.Warn().Str("job_id", j.id).Str("filename", rep.Filename).Msg("report queue full, dropping report")
	}
}

// Close stops the workers. Reports still queued when Close is called may
// be dropped.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.closeChan) })
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case <-d.closeChan:
			return
		case j := <-d.jobs:
			d.deliver(j)
		}
	}
}

// deliver runs one job, containing any panic so a misbehaving channel
// cannot take a worker down.
func (d *Dispatcher) deliver(j job) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Str("job_id", j.id).Interface("panic", r).Msg("report delivery panicked")
		}
	}()
	d.sender.Send(j.report)
}
