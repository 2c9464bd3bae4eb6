package models

import (
	"time"

	id "ledgerguard/pkg/domain"
)

// PIIType is the kind of identifier held in a field.
type PIIType string

const (
	PIITypePAN         PIIType = "PAN"
	PIITypeAadhaar     PIIType = "AADHAAR"
	PIITypeBankAccount PIIType = "BANK_ACCOUNT"
)

func (t PIIType) IsValid() bool {
	switch t {
	case PIITypePAN, PIITypeAadhaar, PIITypeBankAccount:
		return true
	}
	return false
}

// Scope names the purpose a field was stored for, e.g. "kyc" or "bank".
// At most one live field exists per (owner, type, scope).
type Scope string

const (
	ScopeKYC  Scope = "kyc"
	ScopeBank Scope = "bank"
)

// BankScope keeps one account number slot per bank record.
func BankScope(recordID id.RecordID) Scope {
	return Scope(string(ScopeBank) + ":" + recordID.String())
}

// Field is an encrypted PII value. EncryptedValue is ciphertext only.
type Field struct {
	ID             id.FieldID
	OwnerID        id.NodeID
	RecordID       id.RecordID
	Type           PIIType
	EncryptedValue string
	Scope          Scope
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// IsExpired reports whether the field is past its TTL at now.
func (f *Field) IsExpired(now time.Time) bool {
	return !f.ExpiresAt.After(now)
}

// Privilege controls how much of a decrypted value a viewer sees.
type Privilege string

const (
	PrivilegeFull   Privilege = "FULL"
	PrivilegeMasked Privilege = "MASKED"
)

// DisplayKind says what a DisplayValue holds.
type DisplayKind string

const (
	DisplayPlain   DisplayKind = "PLAIN"
	DisplayMasked  DisplayKind = "MASKED"
	DisplayExpired DisplayKind = "EXPIRED"
	DisplayOpaque  DisplayKind = "OPAQUE"
)

// OpaquePlaceholder is shown when a field cannot be decrypted on read.
const OpaquePlaceholder = "**********"

// DisplayValue is what a reader gets back. Value is empty for EXPIRED.
type DisplayValue struct {
	Kind  DisplayKind `json:"kind"`
	Value string      `json:"value,omitempty"`
}

// FieldView pairs field metadata with its display value. It never carries
// ciphertext.
type FieldView struct {
	ID        id.FieldID   `json:"id"`
	Type      PIIType      `json:"pii_type"`
	Scope     Scope        `json:"scope"`
	ExpiresAt time.Time    `json:"expires_at"`
	Display   DisplayValue `json:"display"`
}
