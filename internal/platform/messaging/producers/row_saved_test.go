package producers

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestProducer(writer KafkaWriter) *RowSavedProducer {
	return &RowSavedProducer{
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		writer: writer,
		topic:  "ledger_row_saved",
	}
}

func TestRowSavedProducer_Publish(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		writer := new(MockKafkaWriter)
		producer := newTestProducer(writer)

		event := map[string]any{"date": "2024-05-01", "guest_name": "SMITH"}

		writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 || string(msgs[0].Key) != "2024-05-01" {
				return false
			}
			var decoded map[string]any
			if err := json.Unmarshal(msgs[0].Value, &decoded); err != nil {
				return false
			}
			return decoded["guest_name"] == "SMITH"
		})).Return(nil)

		err := producer.Publish(context.Background(), "2024-05-01", event)
		require.NoError(t, err)
		writer.AssertExpectations(t)
	})

	t.Run("MarshalError", func(t *testing.T) {
		writer := new(MockKafkaWriter)
		producer := newTestProducer(writer)

		err := producer.Publish(context.Background(), "key", make(chan int))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "marshal")
		writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})

	t.Run("WriteError", func(t *testing.T) {
		writer := new(MockKafkaWriter)
		producer := newTestProducer(writer)

		writer.On("WriteMessages", mock.Anything, mock.Anything).Return(assert.AnError)

		err := producer.Publish(context.Background(), "2024-05-01", map[string]any{"a": 1})
		require.Error(t, err)
		writer.AssertExpectations(t)
	})
}

func TestRowSavedProducer_Close(t *testing.T) {
	writer := new(MockKafkaWriter)
	producer := newTestProducer(writer)

	writer.On("Close").Return(nil)

	require.NoError(t, producer.Close())
	writer.AssertExpectations(t)
}
