package models

import (
	"strings"
	"time"

	"ledgerguard/internal/pii/format"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
)

// AccountType is the bank account type.
type AccountType string

const (
	AccountSavings AccountType = "savings"
	AccountCurrent AccountType = "current"
)

func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	if t != AccountSavings && t != AccountCurrent {
		return "", dErrors.New(dErrors.CodeValidation, "account type must be savings or current")
	}
	return t, nil
}

const minNameLength = 3

// Record is a verifiable KYC or bank record.
//
// Invariants:
//   - RejectionReason is non-nil iff Status is REJECT
//   - at most one KYC record per owner, at most one primary bank per owner
//   - Version increases by one on every persisted change
//   - identifiers (PAN, Aadhaar, account number) live in the PII vault, not here
type Record struct {
	ID              id.RecordID
	Kind            Kind
	OwnerID         id.NodeID
	Status          Status
	RejectionReason *string
	Version         int64
	ReviewedBy      *id.NodeID
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// KYC
	Country string

	// Bank
	BankName    string
	HolderName  string
	IFSC        string
	AccountType AccountType
	IsPrimary   bool
}

// NewKYCRecord creates a PENDING KYC record.
func NewKYCRecord(recordID id.RecordID, owner id.NodeID, country string, now time.Time) (*Record, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "country is required")
	}
	if len(country) > 64 {
		return nil, dErrors.New(dErrors.CodeValidation, "country must be 64 characters or less")
	}
	return &Record{
		ID:        recordID,
		Kind:      KindKYC,
		OwnerID:   owner,
		Status:    StatusPending,
		Version:   1,
		Country:   country,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// BankDetails are the non-secret attributes of a bank record.
type BankDetails struct {
	BankName    string
	HolderName  string
	IFSC        string
	AccountType string
}

// NewBankRecord creates a PENDING bank record. Names must be at least three
// characters after trimming.
func NewBankRecord(recordID id.RecordID, owner id.NodeID, d BankDetails, now time.Time) (*Record, error) {
	bankName := strings.TrimSpace(d.BankName)
	if len([]rune(bankName)) < minNameLength {
		return nil, dErrors.New(dErrors.CodeValidation, "bank name must be at least 3 characters")
	}
	holder := strings.TrimSpace(d.HolderName)
	if len([]rune(holder)) < minNameLength {
		return nil, dErrors.New(dErrors.CodeValidation, "holder name must be at least 3 characters")
	}
	ifsc, err := format.NormalizeIFSC(d.IFSC)
	if err != nil {
		return nil, err
	}
	accountType, err := ParseAccountType(d.AccountType)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:          recordID,
		Kind:        KindBank,
		OwnerID:     owner,
		Status:      StatusPending,
		Version:     1,
		BankName:    bankName,
		HolderName:  holder,
		IFSC:        ifsc,
		AccountType: accountType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CanTransition checks a requested status change by reviewer.
// Use with ApplyTransition in Execute callbacks.
func (r *Record) CanTransition(to Status, reason string, reviewer id.NodeID) error {
	if !r.Status.CanTransitionTo(to) {
		return dErrors.New(dErrors.CodeInvalidTransition, "transition "+string(r.Status)+" -> "+string(to)+" is not allowed").
			WithReason(ReasonIllegalTransition)
	}
	if to == StatusRejected && strings.TrimSpace(reason) == "" {
		return dErrors.New(dErrors.CodeInvalidTransition, "a rejection reason is required").
			WithReason(ReasonMissingRejectionReason)
	}
	if to != StatusPending && reviewer == r.OwnerID {
		return dErrors.New(dErrors.CodeInvalidTransition, "owners cannot review their own record").
			WithReason(ReasonSelfReview)
	}
	return nil
}

// ApplyTransition sets the new status. VERIFIED and PENDING clear the
// rejection reason. Call CanTransition first.
func (r *Record) ApplyTransition(to Status, reason string, reviewer id.NodeID, now time.Time) {
	r.Status = to
	if to == StatusRejected {
		trimmed := strings.TrimSpace(reason)
		r.RejectionReason = &trimmed
	} else {
		r.RejectionReason = nil
	}
	r.ReviewedBy = &reviewer
	r.UpdatedAt = now
}

// CanResubmit reports whether a KYC submission may reuse this record.
func (r *Record) CanResubmit() error {
	if r.Status != StatusRejected {
		return dErrors.New(dErrors.CodeConflict, "a kyc record already exists for this owner").
			WithReason(ReasonRecordExists)
	}
	return nil
}

// ApplyResubmission moves a rejected KYC record back to PENDING with new details.
func (r *Record) ApplyResubmission(country string, submitter id.NodeID, now time.Time) {
	r.ApplyTransition(StatusPending, "", submitter, now)
	if c := strings.ToUpper(strings.TrimSpace(country)); c != "" {
		r.Country = c
	}
}

func (r *Record) IsVerified() bool {
	return r.Status == StatusVerified
}

func (r *Record) Clone() *Record {
	c := *r
	if r.RejectionReason != nil {
		reason := *r.RejectionReason
		c.RejectionReason = &reason
	}
	if r.ReviewedBy != nil {
		reviewer := *r.ReviewedBy
		c.ReviewedBy = &reviewer
	}
	return &c
}
