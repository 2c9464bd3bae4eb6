// Package domain holds typed identifiers shared across bounded contexts.
//
// Each identifier is a distinct named type over uuid.UUID so a NodeID can
// never be passed where a RecordID is expected. Parse* functions are the trust
// boundary: they reject empty, malformed and nil UUIDs with CodeInvalidInput.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "ledgerguard/pkg/domain-errors"
)

type (
	// NodeID identifies a tenant tree node (any account: root, admin, user, employee).
	NodeID uuid.UUID
	// TenantID identifies one tenant tree. Every node in a tree shares its root's TenantID.
	TenantID uuid.UUID
	// RecordID identifies a verifiable KYC or bank record.
	RecordID uuid.UUID
	// FieldID identifies an encrypted PII field.
	FieldID uuid.UUID
)

func (id NodeID) String() string   { return uuid.UUID(id).String() }
func (id TenantID) String() string { return uuid.UUID(id).String() }
func (id RecordID) String() string { return uuid.UUID(id).String() }
func (id FieldID) String() string  { return uuid.UUID(id).String() }

func (id NodeID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id TenantID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id RecordID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id FieldID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

func NewNodeID() NodeID     { return NodeID(uuid.New()) }
func NewTenantID() TenantID { return TenantID(uuid.New()) }
func NewRecordID() RecordID { return RecordID(uuid.New()) }
func NewFieldID() FieldID   { return FieldID(uuid.New()) }

func ParseNodeID(s string) (NodeID, error) {
	u, err := parseUUID(s, "node id")
	return NodeID(u), err
}

func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID(s, "tenant id")
	return TenantID(u), err
}

func ParseRecordID(s string) (RecordID, error) {
	u, err := parseUUID(s, "record id")
	return RecordID(u), err
}

func ParseFieldID(s string) (FieldID, error) {
	u, err := parseUUID(s, "field id")
	return FieldID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must not be nil")
	}
	return u, nil
}

// Text encoding keeps ids as canonical UUID strings in JSON and logs.

func (id NodeID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id TenantID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id RecordID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id FieldID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }

func (id *NodeID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = NodeID(u)
	return err
}

func (id *TenantID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = TenantID(u)
	return err
}

func (id *RecordID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = RecordID(u)
	return err
}

func (id *FieldID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = FieldID(u)
	return err
}
