// Package eventbus publishes registration lifecycle events to Kafka.
// Emission is fire-and-forget: producer failures are logged, never
// propagated to the caller.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Topic names for the four logical channels this hub emits on.
const (
	TopicServiceRegistered   = "service-registered"
	TopicServiceUnregistered = "service-unregistered"
	TopicModuleRegistered    = "module-registered"
	TopicModuleUnregistered  = "module-unregistered"
)

// schemaVersion tags the envelope shape so consumers can evolve the record
// layout without breaking on old messages.
const schemaVersion = 1

// envelope is the versioned JSON record written to every topic. The field
// set covers every event listed in the wire format table; unused fields
// are omitted per event type.
type envelope struct {
	SchemaVersion int               `json:"schemaVersion"`
	Type          string            `json:"type"`
	ServiceID     string            `json:"serviceId"`
	ServiceName   string            `json:"serviceName,omitempty"`
	ModuleName    string            `json:"moduleName,omitempty"`
	Host          string            `json:"host,omitempty"`
	Port          int               `json:"port,omitempty"`
	Version       string            `json:"version,omitempty"`
	SchemaID      string            `json:"schemaId,omitempty"`
	ArtifactID    string            `json:"artifactId,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

// Config holds Kafka producer settings.
type Config struct {
	Brokers []string
}

// Emitter owns one kafka.Writer per logical topic.
type Emitter struct {
	log     *zap.Logger
	writers map[string]*kafka.Writer
}

// New builds an Emitter with one writer per topic in cfg.Brokers.
func New(cfg Config, log *zap.Logger) *Emitter {
	topics := []string{TopicServiceRegistered, TopicServiceUnregistered, TopicModuleRegistered, TopicModuleUnregistered}
	writers := make(map[string]*kafka.Writer, len(topics))
	for _, topic := range topics {
		writers[topic] = &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		}
	}
	return &Emitter{log: log, writers: writers}
}

// ServiceRegistered publishes the service-registered event for a completed
// service registration.
func (e *Emitter) ServiceRegistered(ctx context.Context, serviceID, serviceName, host string, port int, version string, metadata map[string]string) {
	e.emit(ctx, TopicServiceRegistered, envelope{
		Type: "ServiceRegistered", ServiceID: serviceID, ServiceName: serviceName,
		Host: host, Port: port, Version: version, Metadata: metadata,
	})
}

// ServiceUnregistered publishes the service-unregistered event.
func (e *Emitter) ServiceUnregistered(ctx context.Context, serviceID, serviceName string) {
	e.emit(ctx, TopicServiceUnregistered, envelope{
		Type: "ServiceUnregistered", ServiceID: serviceID, ServiceName: serviceName,
	})
}

// ModuleRegistered publishes the module-registered event, including the
// resulting schema and (if mirrored) artifact identifiers.
func (e *Emitter) ModuleRegistered(ctx context.Context, serviceID, moduleName, schemaID, artifactID string) {
	e.emit(ctx, TopicModuleRegistered, envelope{
		Type: "ModuleRegistered", ServiceID: serviceID, ModuleName: moduleName,
		SchemaID: schemaID, ArtifactID: artifactID,
	})
}

// ModuleUnregistered publishes the module-unregistered event.
func (e *Emitter) ModuleUnregistered(ctx context.Context, serviceID, moduleName string) {
	e.emit(ctx, TopicModuleUnregistered, envelope{
		Type: "ModuleUnregistered", ServiceID: serviceID, ModuleName: moduleName,
	})
}

func (e *Emitter) emit(ctx context.Context, topic string, env envelope) {
	env.SchemaVersion = schemaVersion
	env.Timestamp = time.Now().UTC()

	payload, err := json.Marshal(env)
	if err != nil {
		e.log.Error("encode event envelope failed", zap.String("topic", topic), zap.Error(err))
		return
	}

	writer, ok := e.writers[topic]
	if !ok {
		e.log.Error("unknown event topic", zap.String("topic", topic))
		return
	}

	msg := kafka.Message{
		Key:   []byte(uuid.NewString()),
		Value: payload,
	}
	if err := writer.WriteMessages(ctx, msg); err != nil {
		e.log.Error("publish event failed", zap.String("topic", topic), zap.Error(err))
	}
}

// Close flushes and closes every topic writer.
func (e *Emitter) Close() error {
	var firstErr error
	for topic, w := range e.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close writer for topic %q: %w", topic, err)
		}
	}
	return firstErr
}
