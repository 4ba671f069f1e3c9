// Package events publishes assessment outcomes for downstream consumers
// (case management, reporting pipelines).
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/lending/recovery-service/internal/config"
	"github.com/lending/recovery-service/internal/domain"
	"github.com/lending/recovery-service/internal/pkg/logger"
)

// AssessmentCompletedEvent is emitted after a record is assembled and
// persisted. It carries the decision, not the full borrower attributes.
type AssessmentCompletedEvent struct {
	EventID         uuid.UUID           `json:"event_id"`
	EventType       string              `json:"event_type"`
	AssessmentID    uuid.UUID           `json:"assessment_id"`
	BorrowerID      string              `json:"borrower_id"`
	RiskProbability float64             `json:"risk_probability"`
	RiskCategory    domain.RiskCategory `json:"risk_category"`
	DaysPastDue     int                 `json:"days_past_due"`
	OccurredAt      time.Time           `json:"occurred_at"`
}

const eventTypeAssessmentCompleted = "recovery.assessment.completed"

// Publisher sends assessment events to Kafka.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewPublisher creates a Kafka publisher from configuration.
func NewPublisher(cfg *config.KafkaConfig, log *logger.Logger) (*Publisher, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Retry.Max = 3
	saramaCfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}

	return newPublisher(producer, cfg.AssessmentsTopic, log), nil
}

func newPublisher(producer sarama.SyncProducer, topic string, log *logger.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		log:      log.Named("event_publisher"),
	}
}

// PublishAssessmentCompleted emits one completion event, keyed by
// assessment ID so replays for the same assessment stay in order.
func (p *Publisher) PublishAssessmentCompleted(record *domain.BorrowerRecord, borrowerID string) error {
	event := AssessmentCompletedEvent{
		EventID:         uuid.New(),
		EventType:       eventTypeAssessmentCompleted,
		AssessmentID:    record.Assessment.ID,
		BorrowerID:      borrowerID,
		RiskProbability: record.Assessment.RiskProbability,
		RiskCategory:    record.Assessment.RiskCategory,
		DaysPastDue:     record.Profile.DaysPastDue,
		OccurredAt:      time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.AssessmentID.String()),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		return fmt.Errorf("publishing event: %w", err)
	}

	p.log.EventPublished(event.AssessmentID.String(), p.topic, partition, offset)
	return nil
}

// Close shuts down the producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
