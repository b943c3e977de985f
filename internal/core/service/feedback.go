package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/careerguide/portal/internal/core/ports"
)

type feedbackKey struct{}

// WithFeedback attaches a request-scoped feedback sink to ctx.
func WithFeedback(ctx context.Context, fb ports.Feedback) context.Context {
	return context.WithValue(ctx, feedbackKey{}, fb)
}

// FeedbackFromContext returns the sink set by WithFeedback, or nil.
func FeedbackFromContext(ctx context.Context) ports.Feedback {
	fb, _ := ctx.Value(feedbackKey{}).(ports.Feedback)
	return fb
}

// LogFeedback writes feedback events to the structured log.
type LogFeedback struct {
	log zerolog.Logger
}

func NewLogFeedback(log zerolog.Logger) *LogFeedback {
	return &LogFeedback{log: log}
}

func (f *LogFeedback) ShowLoading(on bool) {
	f.log.Debug().Bool("loading", on).Msg("loading indicator")
}

func (f *LogFeedback) ShowNotification(message string, severity ports.Severity) {
	ev := f.log.Info()
	if severity == ports.SeverityError || severity == ports.SeverityWarning {
		ev = f.log.Warn()
	}
	ev.Str("severity", string(severity)).Msg(message)
}

// Notification is one recorded user-facing message.
type Notification struct {
	Message  string         `json:"message"`
	Severity ports.Severity `json:"severity"`
}

// FeedbackRecorder collects notifications so the transport can return them.
type FeedbackRecorder struct {
	mu            sync.Mutex
	loading       bool
	notifications []Notification
}

func (r *FeedbackRecorder) ShowLoading(on bool) {
	r.mu.Lock()
	r.loading = on
	r.mu.Unlock()
}

func (r *FeedbackRecorder) ShowNotification(message string, severity ports.Severity) {
	if message == "" {
		return
	}
	r.mu.Lock()
	r.notifications = append(r.notifications, Notification{Message: message, Severity: severity})
	r.mu.Unlock()
}

// Loading reports the last loading state.
func (r *FeedbackRecorder) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Notifications returns a copy of everything recorded so far.
func (r *FeedbackRecorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notifications...)
}
