package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const (
	subjectSubmissionGraded     = "tuition.submissions.graded"
	subjectLateRequestResponded = "tuition.late_requests.responded"
	subjectLateRequestCreated   = "tuition.late_requests.created"
)

// SubmissionGradedEvent is published when a teacher records marks.
type SubmissionGradedEvent struct {
	SubmissionID  uint      `json:"submission_id"`
	AssignmentID  uint      `json:"assignment_id"`
	StudentID     uint      `json:"student_id"`
	MarksObtained int       `json:"marks_obtained"`
	TotalMarks    int       `json:"total_marks"`
	GradedBy      uint      `json:"graded_by"`
	GradedAt      time.Time `json:"graded_at"`
}

// LateRequestEvent is published when a late request is created or decided.
type LateRequestEvent struct {
	RequestID    uint      `json:"request_id"`
	AssignmentID uint      `json:"assignment_id"`
	StudentID    uint      `json:"student_id"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// EventPublisher fans workflow events out to interested consumers
// (notification workers, mailers). Publishing is best-effort: a broker
// outage must not fail the originating request.
type EventPublisher interface {
	SubmissionGraded(ctx context.Context, event SubmissionGradedEvent)
	LateRequestCreated(ctx context.Context, event LateRequestEvent)
	LateRequestResponded(ctx context.Context, event LateRequestEvent)
}

type natsEventPublisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewNATSEventPublisher builds a publisher backed by a NATS connection.
func NewNATSEventPublisher(conn *nats.Conn, logger zerolog.Logger) EventPublisher {
	return &natsEventPublisher{
		conn:   conn,
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *natsEventPublisher) SubmissionGraded(_ context.Context, event SubmissionGradedEvent) {
	p.publish(subjectSubmissionGraded, event)
}

func (p *natsEventPublisher) LateRequestCreated(_ context.Context, event LateRequestEvent) {
	p.publish(subjectLateRequestCreated, event)
}

func (p *natsEventPublisher) LateRequestResponded(_ context.Context, event LateRequestEvent) {
	p.publish(subjectLateRequestResponded, event)
}

func (p *natsEventPublisher) publish(subject string, event interface{}) {
	if p.conn == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Str("subject", subject).Msg("failed to marshal event")
		return
	}

	if err := p.conn.Publish(subject, payload); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
		return
	}

	p.logger.Debug().Str("subject", subject).Msg("event published")
}

type nopEventPublisher struct{}

// NewNopEventPublisher returns a publisher that discards events. Used when no
// broker is configured and in tests.
func NewNopEventPublisher() EventPublisher {
	return nopEventPublisher{}
}

func (nopEventPublisher) SubmissionGraded(context.Context, SubmissionGradedEvent) {}
func (nopEventPublisher) LateRequestCreated(context.Context, LateRequestEvent)    {}
func (nopEventPublisher) LateRequestResponded(context.Context, LateRequestEvent)  {}
