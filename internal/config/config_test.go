package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8086, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "recovery_db", cfg.Database.Database)

	assert.Equal(t, 30*time.Minute, cfg.Redis.ResultTTL)

	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "lending.recovery.assessments", cfg.Kafka.AssessmentsTopic)

	assert.Equal(t, "http://localhost:8501/v1/models/default-risk", cfg.Model.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.Model.RequestTimeout)
	assert.Equal(t, 5, cfg.Model.BreakerFailures)

	assert.Equal(t, 500*time.Millisecond, cfg.Scoring.MaxAssessmentLatency)

	assert.Equal(t, "recovery-service", cfg.Telemetry.ServiceName)
	assert.InDelta(t, 0.1, cfg.Telemetry.SamplingRatio, 1e-9)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("RECOVERY_SERVICE_SERVER_PORT", "9090")
	t.Setenv("RECOVERY_SERVICE_MODEL_ENDPOINT", "http://model:8501/v1/models/default-risk")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://model:8501/v1/models/default-risk", cfg.Model.Endpoint)
}
