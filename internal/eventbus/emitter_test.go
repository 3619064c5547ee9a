package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewCreatesOneWriterPerTopic(t *testing.T) {
	e := New(Config{Brokers: []string{"localhost:9092"}}, zap.NewNop())
	defer e.Close()

	assert.Len(t, e.writers, 4)
	for _, topic := range []string{TopicServiceRegistered, TopicServiceUnregistered, TopicModuleRegistered, TopicModuleUnregistered} {
		_, ok := e.writers[topic]
		assert.True(t, ok, "missing writer for topic %s", topic)
	}
}

func TestEmitUnknownTopicDoesNotPanic(t *testing.T) {
	e := New(Config{Brokers: []string{"localhost:9092"}}, zap.NewNop())
	defer e.Close()

	assert.NotPanics(t, func() {
		e.emit(context.Background(), "not-a-real-topic", envelope{Type: "X"})
	})
}
