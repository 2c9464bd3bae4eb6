package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ledgerguard/internal/authorization"
	"ledgerguard/internal/pii/cipher"
	"ledgerguard/internal/pii/models"
	"ledgerguard/internal/pii/service/mocks"
	"ledgerguard/internal/pii/store"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
	audit "ledgerguard/pkg/platform/audit"
	"ledgerguard/pkg/platform/audit/publishers/compliance"
	auditmemory "ledgerguard/pkg/platform/audit/store/memory"
	"ledgerguard/pkg/requestcontext"
)

// =============================================================================
// PII Vault Test Suite
// =============================================================================
// Justification for unit tests: masking and expiry rules decide what a viewer
// may see. The round-trip and no-leak laws and the corruption paths cannot be
// provoked through HTTP.

type VaultSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	store    *store.InMemory
	auditLog *auditmemory.InMemoryStore
	vault    *Vault
	owner    id.NodeID
	record   id.RecordID
}

func TestVaultSuite(t *testing.T) {
	suite.Run(t, new(VaultSuite))
}

func (s *VaultSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.store = store.NewInMemory()
	s.auditLog = auditmemory.NewInMemoryStore()
	s.owner = id.NewNodeID()
	s.record = id.NewRecordID()

	c, err := cipher.NewFromSeed("vault-test")
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.vault, err = New(s.store, c,
		WithLogger(logger),
		WithAuditPublisher(compliance.New(s.auditLog)),
	)
	s.Require().NoError(err)
}

func (s *VaultSuite) put(typ models.PIIType, value string, ttl time.Duration) *models.Field {
	f, err := s.vault.Store(s.ctx, StoreRequest{
		Type:      typ,
		Plaintext: value,
		OwnerID:   s.owner,
		RecordID:  s.record,
		Scope:     models.ScopeKYC,
		TTL:       ttl,
	})
	s.Require().NoError(err)
	return f
}

func (s *VaultSuite) TestNew() {
	c, err := cipher.NewFromSeed("x")
	s.Require().NoError(err)

	_, err = New(nil, c)
	s.ErrorContains(err, "pii store is required")

	_, err = New(s.store, nil)
	s.ErrorContains(err, "pii cipher is required")
}

// =============================================================================
// Store Tests
// =============================================================================

func (s *VaultSuite) TestStore() {
	s.Run("ciphertext never holds plaintext", func() {
		f := s.put(models.PIITypePAN, "ABCDE1234F", time.Hour)
		s.NotContains(f.EncryptedValue, "ABCDE1234F")
		s.Equal(s.now.Add(time.Hour), f.ExpiresAt)
	})

	s.Run("zero ttl uses the default", func() {
		f := s.put(models.PIITypeAadhaar, "123456789012", 0)
		s.Equal(s.now.Add(DefaultTTL), f.ExpiresAt)
	})

	s.Run("invalid format is rejected without echoing the value", func() {
		_, err := s.vault.Store(s.ctx, StoreRequest{
			Type: models.PIITypePAN, Plaintext: "NOTAPAN", OwnerID: s.owner, RecordID: s.record, Scope: models.ScopeKYC,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.NotContains(err.Error(), "NOTAPAN")
	})

	s.Run("missing owner is a bad request", func() {
		_, err := s.vault.Store(s.ctx, StoreRequest{
			Type: models.PIITypePAN, Plaintext: "ABCDE1234F", RecordID: s.record, Scope: models.ScopeKYC,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *VaultSuite) TestStoreReplacesSameSlot() {
	first := s.put(models.PIITypePAN, "ABCDE1234F", time.Hour)
	second := s.put(models.PIITypePAN, "ZYXWV9876A", time.Hour)

	_, err := s.store.FindByID(s.ctx, first.ID)
	s.Error(err)

	views, err := s.vault.ListForRecord(s.ctx, s.record, models.PrivilegeFull)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal(second.ID, views[0].ID)
	s.Equal("ZY-XWV-987-6A", views[0].Display.Value)
}

func (s *VaultSuite) TestStoreAuditCarriesNoPlaintext() {
	s.put(models.PIITypeAadhaar, "1234 5678 9012", time.Hour)

	events, err := s.auditLog.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventPIIStored), events[0].Action)
	s.Equal("AADHAAR", events[0].Metadata["piiType"])
	s.Equal("****-****-9012", events[0].Metadata["masked"])
	for _, v := range events[0].Metadata {
		if str, ok := v.(string); ok {
			s.NotContains(str, "123456789012")
		}
	}
}

func (s *VaultSuite) TestStoreCorruptionIsAHardError() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	badCipher := mocks.NewMockCipher(ctrl)
	publisher := mocks.NewMockAuditPublisher(ctrl)

	vault, err := New(s.store, badCipher,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(publisher),
	)
	s.Require().NoError(err)

	badCipher.EXPECT().Encrypt("ABCDE1234F").Return("sealed", nil)
	badCipher.EXPECT().Decrypt("sealed").Return("garbage", nil)
	publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev audit.Event) error {
			s.Equal(string(audit.EventPIICorruptionDetected), ev.Action)
			return nil
		})

	_, err = vault.Store(s.ctx, StoreRequest{
		Type: models.PIITypePAN, Plaintext: "ABCDE1234F", OwnerID: s.owner, RecordID: s.record, Scope: models.ScopeKYC,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeCorruptionDetected))

	fields, err := s.store.ListByRecord(s.ctx, s.record)
	s.Require().NoError(err)
	s.Empty(fields)
}

func (s *VaultSuite) TestStoreRollsBackWhenAuditFails() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	publisher := mocks.NewMockAuditPublisher(ctrl)
	c, err := cipher.NewFromSeed("vault-test")
	s.Require().NoError(err)

	vault, err := New(s.store, c,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(publisher),
	)
	s.Require().NoError(err)

	original := s.put(models.PIITypePAN, "ABCDE1234F", time.Hour)
	publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))

	_, err = vault.Store(s.ctx, StoreRequest{
		Type: models.PIITypePAN, Plaintext: "ZYXWV9876A", OwnerID: s.owner, RecordID: s.record, Scope: models.ScopeKYC,
	})
	s.Error(err)

	// The replaced field is restored.
	found, err := s.store.FindByID(s.ctx, original.ID)
	s.Require().NoError(err)
	s.Equal(original.EncryptedValue, found.EncryptedValue)
}

// =============================================================================
// Read Tests
// =============================================================================

func (s *VaultSuite) TestReadFullRoundTrips() {
	cases := map[models.PIIType]struct{ in, want string }{
		models.PIITypePAN:         {"ABCDE1234F", "AB-CDE-123-4F"},
		models.PIITypeAadhaar:     {"123456789012", "1234-5678-9012"},
		models.PIITypeBankAccount: {"001234567890", "001234567890"},
	}
	for typ, tc := range cases {
		f := s.put(typ, tc.in, time.Hour)
		dv := s.vault.Read(s.ctx, f, models.PrivilegeFull)
		s.Equal(models.DisplayPlain, dv.Kind)
		s.Equal(tc.want, dv.Value)
		s.Equal(tc.in, strings.ReplaceAll(dv.Value, "-", ""))
	}
}

func (s *VaultSuite) TestReadMaskedNeverLeaks() {
	values := map[models.PIIType]string{
		models.PIITypePAN:         "ABCDE1234F",
		models.PIITypeAadhaar:     "123456789012",
		models.PIITypeBankAccount: "987654321012345",
	}
	for typ, plain := range values {
		f := s.put(typ, plain, time.Hour)
		dv := s.vault.Read(s.ctx, f, models.PrivilegeMasked)
		s.Equal(models.DisplayMasked, dv.Kind)
		for i := 0; i+5 <= len(plain); i++ {
			s.NotContains(dv.Value, plain[i:i+5])
		}
	}
}

func (s *VaultSuite) TestReadExpiredRegardlessOfPrivilege() {
	f := s.put(models.PIITypePAN, "ABCDE1234F", time.Minute)
	later := requestcontext.WithTime(context.Background(), s.now.Add(time.Minute))

	for _, p := range []models.Privilege{models.PrivilegeFull, models.PrivilegeMasked} {
		dv := s.vault.Read(later, f, p)
		s.Equal(models.DisplayExpired, dv.Kind)
		s.Empty(dv.Value)
	}
}

func (s *VaultSuite) TestReadCorruptDegradesToOpaque() {
	f := s.put(models.PIITypePAN, "ABCDE1234F", time.Hour)
	f.EncryptedValue = "AAAA" + f.EncryptedValue[4:]

	dv := s.vault.Read(s.ctx, f, models.PrivilegeFull)
	s.Equal(models.DisplayOpaque, dv.Kind)
	s.Equal(models.OpaquePlaceholder, dv.Value)
}

func (s *VaultSuite) TestReadByID() {
	f := s.put(models.PIITypeAadhaar, "123456789012", time.Hour)
	dv, err := s.vault.ReadByID(s.ctx, f.ID, models.PrivilegeMasked)
	s.Require().NoError(err)
	s.Equal("****-****-9012", dv.Value)

	_, err = s.vault.ReadByID(s.ctx, id.NewFieldID(), models.PrivilegeFull)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

// =============================================================================
// Lifecycle Tests
// =============================================================================

func (s *VaultSuite) TestDeleteForRecord() {
	s.put(models.PIITypePAN, "ABCDE1234F", time.Hour)
	s.put(models.PIITypeAadhaar, "123456789012", time.Hour)

	n, err := s.vault.DeleteForRecord(s.ctx, s.record)
	s.Require().NoError(err)
	s.Equal(2, n)

	views, err := s.vault.ListForRecord(s.ctx, s.record, models.PrivilegeFull)
	s.Require().NoError(err)
	s.Empty(views)
}

func (s *VaultSuite) TestPurgeExpired() {
	s.put(models.PIITypePAN, "ABCDE1234F", time.Minute)
	keep := s.put(models.PIITypeAadhaar, "123456789012", time.Hour)
	s.auditLog.Clear()

	later := requestcontext.WithTime(context.Background(), s.now.Add(2*time.Minute))
	n, err := s.vault.PurgeExpired(later)
	s.Require().NoError(err)
	s.Equal(1, n)

	_, err = s.store.FindByID(s.ctx, keep.ID)
	s.NoError(err)

	events, err := s.auditLog.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventPIIPurged), events[0].Action)
	s.Equal(1, events[0].Metadata["count"])

	n, err = s.vault.PurgeExpired(later)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *VaultSuite) TestPrivilegeFor() {
	cases := map[authorization.ReasonCode]models.Privilege{
		authorization.ReasonSelf:                     models.PrivilegeFull,
		authorization.ReasonHierarchyAccess:          models.PrivilegeFull,
		authorization.ReasonRootOverAdmin:            models.PrivilegeFull,
		authorization.ReasonDelegatedHierarchyAccess: models.PrivilegeMasked,
	}
	for reason, want := range cases {
		s.Equal(want, PrivilegeFor(&authorization.Decision{Allowed: true, Reason: reason}), string(reason))
	}
	s.Equal(models.PrivilegeMasked, PrivilegeFor(&authorization.Decision{Allowed: false, Reason: authorization.ReasonOutOfScope}))
	s.Equal(models.PrivilegeMasked, PrivilegeFor(nil))
}
