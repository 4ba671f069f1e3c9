package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lending/recovery-service/internal/domain"
	"github.com/lending/recovery-service/internal/pkg/logger"
)

func testRecord() *domain.BorrowerRecord {
	return &domain.BorrowerRecord{
		Profile: domain.BorrowerProfile{
			FirstName:   "Anita",
			LastName:    "Desai",
			DaysPastDue: 45,
		},
		Assessment: domain.RiskAssessment{
			ID:              uuid.New(),
			RiskProbability: 0.82,
			RiskCategory:    domain.RiskCategoryHigh,
		},
	}
}

func newMockPublisher(t *testing.T) (*Publisher, *mocks.SyncProducer) {
	t.Helper()
	log, err := logger.New("events-test", "test", false)
	require.NoError(t, err)

	producer := mocks.NewSyncProducer(t, nil)
	return newPublisher(producer, "lending.recovery.assessments", log), producer
}

func TestPublishAssessmentCompleted(t *testing.T) {
	publisher, producer := newMockPublisher(t)
	record := testRecord()

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "lending.recovery.assessments", msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, record.Assessment.ID.String(), string(key))

		body, err := msg.Value.Encode()
		require.NoError(t, err)

		var event AssessmentCompletedEvent
		require.NoError(t, json.Unmarshal(body, &event))
		assert.Equal(t, eventTypeAssessmentCompleted, event.EventType)
		assert.Equal(t, record.Assessment.ID, event.AssessmentID)
		assert.Equal(t, "PER-AD-1718000000-A3F0", event.BorrowerID)
		assert.Equal(t, 0.82, event.RiskProbability)
		assert.Equal(t, domain.RiskCategoryHigh, event.RiskCategory)
		assert.Equal(t, 45, event.DaysPastDue)
		assert.False(t, event.OccurredAt.IsZero())
		return nil
	})

	err := publisher.PublishAssessmentCompleted(record, "PER-AD-1718000000-A3F0")
	assert.NoError(t, err)
}

func TestPublishAssessmentCompleted_BrokerFailure(t *testing.T) {
	publisher, producer := newMockPublisher(t)

	producer.ExpectSendMessageAndFail(errors.New("broker not available"))

	err := publisher.PublishAssessmentCompleted(testRecord(), "PER-AD-1718000000-A3F0")
	assert.Error(t, err)
}
