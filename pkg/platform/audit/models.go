package audit

import (
	"context"
	"fmt"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing downstream of the outbox.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: verification
	// outcomes, PII writes and record deletion. Long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers access decisions and failed operations that feed
	// security monitoring.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity such as tree registration and reads.
	CategoryOperations EventCategory = "operations"
)

// Event is the audit contract: one event per authorization decision or
// verification transition. Metadata values are scalars and never carry PII.
type Event struct {
	Category   EventCategory
	Timestamp  time.Time
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Metadata   map[string]any
	RequestID  string
}

// Store persists audit events. The Postgres implementation writes to the
// outbox within the caller's transaction when one is present in ctx.
type Store interface {
	Append(ctx context.Context, event Event) error
}

type AuditEvent string

const (
	// Authorization
	EventAccessGranted AuditEvent = "ACCESS_GRANTED"
	EventAccessDenied  AuditEvent = "ACCESS_DENIED"

	// Hierarchy
	EventNodeRegistered AuditEvent = "NODE_REGISTERED"

	// KYC
	EventKYCSubmitted        AuditEvent = "KYC_SUBMITTED"
	EventKYCVerified         AuditEvent = "KYC_VERIFIED"
	EventKYCRejected         AuditEvent = "KYC_REJECT"
	EventKYCPending          AuditEvent = "KYC_PENDING"
	EventKYCTransitionFailed AuditEvent = "KYC_TRANSITION_FAILED"

	// Bank
	EventBankAdded            AuditEvent = "BANK_ADDED"
	EventBankVerified         AuditEvent = "BANK_VERIFIED"
	EventBankRejected         AuditEvent = "BANK_REJECT"
	EventBankPending          AuditEvent = "BANK_PENDING"
	EventBankTransitionFailed AuditEvent = "BANK_TRANSITION_FAILED"
	EventBankPrimarySet       AuditEvent = "BANK_PRIMARY_SET"

	// Records
	EventRecordViewed  AuditEvent = "RECORD_VIEWED"
	EventRecordDeleted AuditEvent = "RECORD_DELETED"

	// PII vault
	EventPIIStored AuditEvent = "PII_STORED"
	EventPIIPurged AuditEvent = "PII_PURGED"

	EventPIICorruptionDetected AuditEvent = "PII_CORRUPTION_DETECTED"
)

// Entity types carried in Event.EntityType.
const (
	EntityNode     = "tenant_node"
	EntityKYC      = "kyc_record"
	EntityBank     = "bank_record"
	EntityPIIField = "pii_field"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventKYCVerified:   CategoryCompliance,
	EventKYCRejected:   CategoryCompliance,
	EventKYCPending:    CategoryCompliance,
	EventKYCSubmitted:  CategoryCompliance,
	EventBankVerified:  CategoryCompliance,
	EventBankRejected:  CategoryCompliance,
	EventBankPending:   CategoryCompliance,
	EventBankAdded:     CategoryCompliance,
	EventRecordDeleted: CategoryCompliance,
	EventPIIStored:     CategoryCompliance,
	EventPIIPurged:     CategoryCompliance,

	EventAccessGranted:         CategorySecurity,
	EventAccessDenied:          CategorySecurity,
	EventKYCTransitionFailed:   CategorySecurity,
	EventBankTransitionFailed:  CategorySecurity,
	EventPIICorruptionDetected: CategorySecurity,

	EventNodeRegistered: CategoryOperations,
	EventRecordViewed:   CategoryOperations,
	EventBankPrimarySet: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// ValidateMetadata rejects non-scalar metadata values.
func ValidateMetadata(md map[string]any) error {
	for k, v := range md {
		switch v.(type) {
		case nil, string, bool, int, int32, int64, float64:
		default:
			return fmt.Errorf("audit metadata %q must be a scalar, got %T", k, v)
		}
	}
	return nil
}
