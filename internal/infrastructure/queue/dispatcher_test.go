package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerguide/portal/internal/api/metrics"
	"github.com/careerguide/portal/internal/core/domain"
)

type recordingProcessor struct {
	mu   sync.Mutex
	seen []domain.Inquiry
	fail string
}

func (p *recordingProcessor) Process(_ context.Context, in domain.Inquiry) error {
	if in.Email == p.fail {
		return errors.New("store down")
	}
	p.mu.Lock()
	p.seen = append(p.seen, in)
	p.mu.Unlock()
	return nil
}

func (p *recordingProcessor) messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.seen))
	for _, in := range p.seen {
		out = append(out, in.Message)
	}
	return out
}

func TestDispatcher_ProcessesInOrderPerSender(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &recordingProcessor{}
	d := NewDispatcher(3, p, zerolog.Nop())
	d.Start(ctx)

	for _, msg := range []string{"one", "two", "three"} {
		require.True(t, d.Enqueue(domain.Inquiry{Kind: domain.InquiryContact, Email: "ana@example.com", Message: msg}))
	}

	require.Eventually(t, func() bool { return len(p.messages()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"one", "two", "three"}, p.messages())
}

func TestDispatcher_ProcessorErrorDoesNotStopWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &recordingProcessor{fail: "bad@example.com"}
	d := NewDispatcher(1, p, zerolog.Nop())
	d.Start(ctx)

	require.True(t, d.Enqueue(domain.Inquiry{Kind: domain.InquiryNewsletter, Email: "bad@example.com"}))
	require.True(t, d.Enqueue(domain.Inquiry{Kind: domain.InquiryNewsletter, Email: "good@example.com", Message: "ok"}))

	require.Eventually(t, func() bool { return len(p.messages()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestDispatcher_ShardIndexIgnoresEmailCase(t *testing.T) {
	d := NewDispatcher(8, &recordingProcessor{}, zerolog.Nop())

	a := d.shardIndex(domain.NormalizeEmail("Ana@Example.com"))
	b := d.shardIndex(domain.NormalizeEmail("ana@example.com"))
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 8)
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingProcessor{}, zerolog.Nop())
	assert.Len(t, d.workers, defaultWorkers)
}

func queueDepth(t *testing.T, worker string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.InquiryQueueDepth.WithLabelValues(worker).Write(&m))
	return m.GetGauge().GetValue()
}

func TestDispatcher_EnqueueFullBuffer(t *testing.T) {
	d := NewDispatcher(1, &recordingProcessor{}, zerolog.Nop())
	before := queueDepth(t, "0")

	in := domain.Inquiry{Kind: domain.InquiryContact, Email: "ana@example.com"}
	for i := 0; i < channelBuffer; i++ {
		require.True(t, d.Enqueue(in))
	}
	assert.False(t, d.Enqueue(in))
	assert.Equal(t, before+channelBuffer, queueDepth(t, "0"), "a dropped inquiry must not stay counted")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	require.Eventually(t, func() bool { return queueDepth(t, "0") == before }, time.Second, 5*time.Millisecond)
}
