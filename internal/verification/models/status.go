package models

import (
	"strings"

	dErrors "ledgerguard/pkg/domain-errors"
	audit "ledgerguard/pkg/platform/audit"
)

// Kind distinguishes the two verifiable record types.
type Kind string

const (
	KindKYC  Kind = "KYC"
	KindBank Kind = "BANK"
)

func (k Kind) IsValid() bool {
	return k == KindKYC || k == KindBank
}

// ParseKind accepts "kyc"/"bank" in any case, as used in URLs.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", dErrors.New(dErrors.CodeBadRequest, "record kind must be kyc or bank")
	}
	return k, nil
}

// EntityType is the audit entity type for records of this kind.
func (k Kind) EntityType() string {
	if k == KindBank {
		return audit.EntityBank
	}
	return audit.EntityKYC
}

// Status is the verification status of a record.
//
// Allowed edges:
//   - PENDING -> VERIFIED | REJECT
//   - REJECT -> PENDING (resubmission)
//   - VERIFIED -> VERIFIED (re-confirmation, no-op)
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusVerified Status = "VERIFIED"
	StatusRejected Status = "REJECT"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeBadRequest, "status must be PENDING, VERIFIED or REJECT")
	}
	return st, nil
}

func (s Status) CanTransitionTo(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusVerified || to == StatusRejected
	case StatusRejected:
		return to == StatusPending
	case StatusVerified:
		return to == StatusVerified
	}
	return false
}

// Reason codes carried by CodeInvalidTransition errors.
const (
	ReasonIllegalTransition      = "ILLEGAL_TRANSITION"
	ReasonMissingRejectionReason = "MISSING_REJECTION_REASON"
	ReasonSelfReview             = "SELF_REVIEW"
	ReasonRecordNotFound         = "RECORD_NOT_FOUND"
	ReasonRecordExists           = "RECORD_EXISTS"
)

var successEvents = map[Kind]map[Status]audit.AuditEvent{
	KindKYC: {
		StatusPending:  audit.EventKYCPending,
		StatusVerified: audit.EventKYCVerified,
		StatusRejected: audit.EventKYCRejected,
	},
	KindBank: {
		StatusPending:  audit.EventBankPending,
		StatusVerified: audit.EventBankVerified,
		StatusRejected: audit.EventBankRejected,
	},
}

// SuccessEvent names the audit event for a completed transition into status.
func SuccessEvent(kind Kind, status Status) audit.AuditEvent {
	return successEvents[kind][status]
}

// FailureEvent names the audit event for a transition that changed nothing.
func FailureEvent(kind Kind) audit.AuditEvent {
	if kind == KindBank {
		return audit.EventBankTransitionFailed
	}
	return audit.EventKYCTransitionFailed
}

// CreatedEvent names the audit event for a new record of this kind.
func CreatedEvent(kind Kind) audit.AuditEvent {
	if kind == KindBank {
		return audit.EventBankAdded
	}
	return audit.EventKYCSubmitted
}
