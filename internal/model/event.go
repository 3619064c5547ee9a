package model

import "time"

// EventType enumerates the lifecycle stages of a registration stream.
type EventType string

const (
	EventStarted               EventType = "STARTED"
	EventValidated             EventType = "VALIDATED"
	EventConsulRegistered      EventType = "CONSUL_REGISTERED"
	EventHealthCheckConfigured EventType = "HEALTH_CHECK_CONFIGURED"
	EventConsulHealthy         EventType = "CONSUL_HEALTHY"
	EventMetadataRetrieved     EventType = "METADATA_RETRIEVED"
	EventSchemaValidated       EventType = "SCHEMA_VALIDATED"
	EventDatabaseSaved         EventType = "DATABASE_SAVED"
	EventApicurioRegistered    EventType = "APICURIO_REGISTERED"
	EventCompleted             EventType = "COMPLETED"
	EventFailed                EventType = "FAILED"
)

// RegistrationEvent is one element of a registration stream.
type RegistrationEvent struct {
	EventType   EventType
	ServiceID   string
	Message     string
	ErrorDetail string
	Timestamp   time.Time
}
