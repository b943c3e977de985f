package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/careerguide/portal/internal/api/metrics"
	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes inquiries to a fixed set of workers using consistent
// hashing on the sender email, so one sender's inquiries persist in order.
type Dispatcher struct {
	workers   []chan domain.Inquiry
	processor ports.InquiryProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.InquiryProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.Inquiry, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Inquiry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands in to its worker. It returns false when that worker's
// buffer is full.
func (d *Dispatcher) Enqueue(in domain.Inquiry) bool {
	idx := d.shardIndex(domain.NormalizeEmail(in.Email))
	// counted before the send so the worker's Dec never runs first
	depth := metrics.InquiryQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()
	select {
	case d.workers[idx] <- in:
		return true
	default:
		depth.Dec()
		metrics.InquiriesTotal.WithLabelValues(string(in.Kind), "dropped").Inc()
		d.log.Warn().Str("kind", string(in.Kind)).Int("worker_id", idx).Msg("inquiry queue full")
		return false
	}
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Inquiry) {
	depth := metrics.InquiryQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			if err := d.processor.Process(ctx, in); err != nil {
				metrics.InquiriesTotal.WithLabelValues(string(in.Kind), "error").Inc()
				d.log.Error().Err(err).
					Str("kind", string(in.Kind)).
					Int("worker_id", id).
					Msg("inquiry processing failed")
				continue
			}
			metrics.InquiriesTotal.WithLabelValues(string(in.Kind), "stored").Inc()
		}
	}
}
