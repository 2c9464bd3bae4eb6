package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ledgerguard/internal/authorization"
	hierarchymodels "ledgerguard/internal/hierarchy/models"
	hierarchy "ledgerguard/internal/hierarchy/service"
	hierarchystore "ledgerguard/internal/hierarchy/store"
	"ledgerguard/internal/pii/cipher"
	piimodels "ledgerguard/internal/pii/models"
	piiservice "ledgerguard/internal/pii/service"
	piistore "ledgerguard/internal/pii/store"
	"ledgerguard/internal/verification/models"
	"ledgerguard/internal/verification/service/mocks"
	"ledgerguard/internal/verification/store"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
	audit "ledgerguard/pkg/platform/audit"
	"ledgerguard/pkg/platform/audit/publishers/compliance"
	auditmemory "ledgerguard/pkg/platform/audit/store/memory"
	"ledgerguard/pkg/platform/sentinel"
	"ledgerguard/pkg/requestcontext"
	"ledgerguard/pkg/testutil"
)

// =============================================================================
// Verification Service Test Suite
// =============================================================================
// Justification for unit tests: transitions combine authorization, the status
// machine, vault writes, the owner flag and the audit outbox in one unit of
// work. These tests run the real in-memory stack so rollback and the
// one-event-per-call contract are exercised end to end.

const (
	testPAN     = "ABCDE1234F"
	testAadhaar = "123456789012"
	testAccount = "001234567890"
)

type VerificationSuite struct {
	suite.Suite
	ctx       context.Context
	logger    *slog.Logger
	nodes     *hierarchystore.InMemory
	hierarchy *hierarchy.Service
	authz     *authorization.Service
	vault     *piiservice.Vault
	records   *store.InMemory
	auditLog  *auditmemory.InMemoryStore
	service   *Service

	root, adminA, userU, empOfA, adminB *hierarchymodels.TenantNode
}

func TestVerificationSuite(t *testing.T) {
	suite.Run(t, new(VerificationSuite))
}

func (s *VerificationSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.auditLog = auditmemory.NewInMemoryStore()
	publisher := compliance.New(s.auditLog, compliance.WithLogger(s.logger))

	var err error
	s.nodes = hierarchystore.NewInMemory()
	s.hierarchy, err = hierarchy.New(s.nodes, hierarchy.WithLogger(s.logger))
	s.Require().NoError(err)

	s.authz, err = authorization.New(s.hierarchy,
		authorization.WithLogger(s.logger),
		authorization.WithAuditPublisher(publisher),
	)
	s.Require().NoError(err)

	c, err := cipher.NewFromSeed("verification-test")
	s.Require().NoError(err)
	s.vault, err = piiservice.New(piistore.NewInMemory(), c,
		piiservice.WithLogger(s.logger),
		piiservice.WithAuditPublisher(publisher),
	)
	s.Require().NoError(err)

	s.records = store.NewInMemory()
	s.service = s.newService(publisher)

	// root
	// ├── A (ADMIN)
	// │   ├── U (USER)
	// │   └── empOfA
	// └── B (ADMIN)
	s.root, err = s.hierarchy.RegisterRoot(s.ctx, "root@acme.test")
	s.Require().NoError(err)
	s.adminA = s.register(s.root, "a@acme.test", hierarchymodels.RoleAdmin)
	s.userU = s.register(s.adminA, "u@acme.test", hierarchymodels.RoleUser)
	s.empOfA = s.register(s.adminA, "ea@acme.test", hierarchymodels.RoleEmployee)
	s.adminB = s.register(s.root, "b@acme.test", hierarchymodels.RoleAdmin)
}

func (s *VerificationSuite) newService(publisher AuditPublisher) *Service {
	svc, err := New(s.records, s.authz, s.nodes, s.vault,
		WithLogger(s.logger),
		WithAuditPublisher(publisher),
	)
	s.Require().NoError(err)
	return svc
}

func (s *VerificationSuite) register(parent *hierarchymodels.TenantNode, login string, role hierarchymodels.RoleName) *hierarchymodels.TenantNode {
	n, err := s.hierarchy.RegisterNode(s.ctx, parent.ID, login, role, role.ExpectedRoleType())
	s.Require().NoError(err)
	return n
}

func (s *VerificationSuite) actor(n *hierarchymodels.TenantNode) hierarchymodels.Actor {
	a, err := s.hierarchy.ResolveActor(s.ctx, n.ID)
	s.Require().NoError(err)
	return a
}

func (s *VerificationSuite) submitKYC(owner *hierarchymodels.TenantNode) *models.Record {
	r, err := s.service.SubmitKYC(s.ctx, s.actor(owner), SubmitKYCRequest{
		OwnerID: owner.ID,
		Country: "IN",
		PAN:     testPAN,
		Aadhaar: testAadhaar,
	})
	s.Require().NoError(err)
	return r
}

func (s *VerificationSuite) addBank(owner *hierarchymodels.TenantNode, primary bool) *models.Record {
	r, err := s.service.AddBankAccount(s.ctx, s.actor(owner), AddBankRequest{
		OwnerID:       owner.ID,
		BankName:      "HDFC Bank",
		HolderName:    "Asha Rao",
		IFSC:          "HDFC0001234",
		AccountType:   "savings",
		AccountNumber: testAccount,
		Primary:       primary,
	})
	s.Require().NoError(err)
	return r
}

func (s *VerificationSuite) transition(by *hierarchymodels.TenantNode, r *models.Record, to models.Status, reason string) (*models.Record, error) {
	return s.service.Transition(s.ctx, s.actor(by), TransitionRequest{
		Kind:     r.Kind,
		RecordID: r.ID,
		Status:   to,
		Reason:   reason,
	})
}

func (s *VerificationSuite) events() []audit.Event {
	events, err := s.auditLog.ListAll(s.ctx)
	s.Require().NoError(err)
	return events
}

func (s *VerificationSuite) actions() []string {
	var out []string
	for _, e := range s.events() {
		out = append(out, e.Action)
	}
	return out
}

func (s *VerificationSuite) kycFlag(n *hierarchymodels.TenantNode) bool {
	node, err := s.nodes.FindByID(s.ctx, n.ID)
	s.Require().NoError(err)
	return node.IsKYCVerified
}

func (s *VerificationSuite) reload(r *models.Record) *models.Record {
	found, err := s.records.FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	return found
}

func (s *VerificationSuite) TestNew() {
	_, err := New(nil, s.authz, s.nodes, s.vault)
	s.ErrorContains(err, "verification store is required")
	_, err = New(s.records, nil, s.nodes, s.vault)
	s.ErrorContains(err, "authorizer is required")
	_, err = New(s.records, s.authz, nil, s.vault)
	s.ErrorContains(err, "owner store is required")
	_, err = New(s.records, s.authz, s.nodes, nil)
	s.ErrorContains(err, "pii vault is required")
}

// =============================================================================
// Transition Tests
// =============================================================================

func (s *VerificationSuite) TestWorkedExample() {
	t := s.T()
	k := s.submitKYC(s.userU)

	testutil.Given(t, "U has a pending KYC record under admin A", func(t *testing.T) {
		require.Equal(t, models.StatusPending, k.Status)
		require.Equal(t, s.userU.ID, k.OwnerID)
	})

	testutil.When(t, "stranger admin B tries to verify it", func(t *testing.T) {
		s.auditLog.Clear()
		_, err := s.transition(s.adminB, k, models.StatusVerified, "")

		testutil.Then(t, "the call is denied out of scope and nothing changes", func(t *testing.T) {
			require.True(t, dErrors.HasCode(err, dErrors.CodeAuthorizationDenied))
			require.Equal(t, string(authorization.ReasonOutOfScope), dErrors.ReasonOf(err))
			require.Equal(t, models.StatusPending, s.reload(k).Status)
			require.Equal(t, int64(1), s.reload(k).Version)
			require.False(t, s.kycFlag(s.userU))

			events := s.events()
			require.Len(t, events, 1)
			require.Equal(t, string(audit.EventKYCTransitionFailed), events[0].Action)
			require.Equal(t, "OUT_OF_SCOPE", events[0].Metadata["reasonCode"])
		})
	})

	testutil.When(t, "admin A verifies it", func(t *testing.T) {
		s.auditLog.Clear()
		updated, err := s.transition(s.adminA, k, models.StatusVerified, "")

		testutil.Then(t, "the record and the owner flag change together with one event", func(t *testing.T) {
			require.NoError(t, err)
			require.Equal(t, models.StatusVerified, updated.Status)
			require.Equal(t, s.adminA.ID, *updated.ReviewedBy)
			require.True(t, s.kycFlag(s.userU))

			events := s.events()
			require.Len(t, events, 1)
			e := events[0]
			require.Equal(t, string(audit.EventKYCVerified), e.Action)
			require.Equal(t, s.adminA.ID.String(), e.ActorID)
			require.Equal(t, audit.EntityKYC, e.EntityType)
			require.Equal(t, k.ID.String(), e.EntityID)
			require.Equal(t, "PENDING", e.Metadata["previousStatus"])
			require.Equal(t, "VERIFIED", e.Metadata["newStatus"])
			require.Equal(t, audit.CategoryCompliance, e.Category)
		})
	})
}

func (s *VerificationSuite) TestRejectRequiresReason() {
	k := s.submitKYC(s.userU)

	s.Run("blank reason is refused", func() {
		s.auditLog.Clear()
		_, err := s.transition(s.adminA, k, models.StatusRejected, "   ")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
		s.Equal(models.ReasonMissingRejectionReason, dErrors.ReasonOf(err))
		s.Equal(models.StatusPending, s.reload(k).Status)
		s.Equal([]string{string(audit.EventKYCTransitionFailed)}, s.actions())
	})

	s.Run("reason is stored and audited", func() {
		s.auditLog.Clear()
		updated, err := s.transition(s.adminA, k, models.StatusRejected, " document unreadable ")
		s.Require().NoError(err)
		s.Equal(models.StatusRejected, updated.Status)
		s.Require().NotNil(updated.RejectionReason)
		s.Equal("document unreadable", *updated.RejectionReason)
		s.False(s.kycFlag(s.userU))

		events := s.events()
		s.Require().Len(events, 1)
		s.Equal(string(audit.EventKYCRejected), events[0].Action)
		s.Equal("document unreadable", events[0].Metadata["reason"])
	})
}

func (s *VerificationSuite) TestResubmission() {
	k := s.submitKYC(s.userU)
	_, err := s.transition(s.adminA, k, models.StatusRejected, "expired id")
	s.Require().NoError(err)

	s.Run("owner cannot review its own record", func() {
		_, err := s.transition(s.userU, k, models.StatusVerified, "")
		s.Equal(models.ReasonSelfReview, dErrors.ReasonOf(err))
	})

	s.Run("owner resubmits and the reason is cleared", func() {
		updated, err := s.transition(s.userU, k, models.StatusPending, "")
		s.Require().NoError(err)
		s.Equal(models.StatusPending, updated.Status)
		s.Nil(updated.RejectionReason)
		s.Equal(s.userU.ID, *updated.ReviewedBy)
	})

	s.Run("admin can verify the resubmission", func() {
		updated, err := s.transition(s.adminA, k, models.StatusVerified, "")
		s.Require().NoError(err)
		s.Equal(models.StatusVerified, updated.Status)
		s.True(s.kycFlag(s.userU))
	})
}

func (s *VerificationSuite) TestIllegalEdges() {
	k := s.submitKYC(s.userU)

	_, err := s.transition(s.adminA, k, models.StatusPending, "")
	s.Equal(models.ReasonIllegalTransition, dErrors.ReasonOf(err))

	_, err = s.transition(s.adminA, k, models.StatusVerified, "")
	s.Require().NoError(err)

	_, err = s.transition(s.adminA, k, models.StatusRejected, "changed my mind")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
	s.Equal(models.ReasonIllegalTransition, dErrors.ReasonOf(err))
	s.Equal(models.StatusVerified, s.reload(k).Status)

	s.Run("re-confirmation is accepted and audited", func() {
		s.auditLog.Clear()
		updated, err := s.transition(s.adminA, k, models.StatusVerified, "")
		s.Require().NoError(err)
		s.Equal(models.StatusVerified, updated.Status)
		s.True(s.kycFlag(s.userU))
		s.Equal([]string{string(audit.EventKYCVerified)}, s.actions())
	})
}

func (s *VerificationSuite) TestKindMustMatch() {
	k := s.submitKYC(s.userU)
	_, err := s.service.Transition(s.ctx, s.actor(s.adminA), TransitionRequest{
		Kind:     models.KindBank,
		RecordID: k.ID,
		Status:   models.StatusVerified,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal(models.StatusPending, s.reload(k).Status)
}

func (s *VerificationSuite) TestConcurrentTransitions() {
	k := s.submitKYC(s.userU)
	s.auditLog.Clear()
	admin := s.actor(s.adminA)

	targets := []struct {
		status models.Status
		reason string
	}{
		{models.StatusVerified, ""},
		{models.StatusRejected, "mismatch"},
	}
	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		i, target := i, target
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.service.Transition(s.ctx, admin, TransitionRequest{
				Kind: models.KindKYC, RecordID: k.ID, Status: target.status, Reason: target.reason,
			})
		}()
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			s.Equal(models.ReasonIllegalTransition, dErrors.ReasonOf(err))
		}
	}
	s.Equal(1, failed)

	final := s.reload(k)
	s.Equal(int64(2), final.Version)
	s.Equal(final.Status == models.StatusVerified, s.kycFlag(s.userU))
	s.Equal(final.Status == models.StatusRejected, final.RejectionReason != nil)
	s.ElementsMatch([]string{
		string(models.SuccessEvent(models.KindKYC, final.Status)),
		string(audit.EventKYCTransitionFailed),
	}, s.actions())
}

func (s *VerificationSuite) TestAuditFailureRollsBack() {
	ctrl := gomock.NewController(s.T())
	publisher := mocks.NewMockAuditPublisher(ctrl)
	publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e audit.Event) error {
			if e.Action == string(audit.EventKYCVerified) {
				return errors.New("outbox unavailable")
			}
			return nil
		}).AnyTimes()

	k := s.submitKYC(s.userU)
	svc := s.newService(publisher)

	_, err := svc.Transition(s.ctx, s.actor(s.adminA), TransitionRequest{
		Kind: models.KindKYC, RecordID: k.ID, Status: models.StatusVerified,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	after := s.reload(k)
	s.Equal(models.StatusPending, after.Status)
	s.Equal(int64(1), after.Version)
	s.False(s.kycFlag(s.userU))
}

func (s *VerificationSuite) TestOwnerFlagFailureRollsBack() {
	ctrl := gomock.NewController(s.T())
	owners := mocks.NewMockOwnerStore(ctrl)
	owners.EXPECT().SetKYCVerified(gomock.Any(), s.userU.ID, true).Return(errors.New("db gone"))

	k := s.submitKYC(s.userU)
	s.auditLog.Clear()
	svc, err := New(s.records, s.authz, owners, s.vault,
		WithLogger(s.logger),
		WithAuditPublisher(compliance.New(s.auditLog)),
	)
	s.Require().NoError(err)

	_, err = svc.Transition(s.ctx, s.actor(s.adminA), TransitionRequest{
		Kind: models.KindKYC, RecordID: k.ID, Status: models.StatusVerified,
	})
	s.Require().Error(err)
	s.Equal(models.StatusPending, s.reload(k).Status)
	s.Equal([]string{string(audit.EventKYCTransitionFailed)}, s.actions())
}

func (s *VerificationSuite) TestStaleWriteIsConcurrentModification() {
	ctrl := gomock.NewController(s.T())
	records := mocks.NewMockStore(ctrl)
	recordID := id.NewRecordID()
	records.EXPECT().FindByID(gomock.Any(), recordID).Return(&models.Record{ID: recordID, OwnerID: s.userU.ID, Kind: models.KindKYC}, nil)
	records.EXPECT().Execute(gomock.Any(), recordID, gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrStale)

	s.auditLog.Clear()
	svc, err := New(records, s.authz, s.nodes, s.vault,
		WithLogger(s.logger),
		WithAuditPublisher(compliance.New(s.auditLog)),
	)
	s.Require().NoError(err)

	_, err = svc.Transition(s.ctx, s.actor(s.adminA), TransitionRequest{
		Kind: models.KindKYC, RecordID: recordID, Status: models.StatusVerified,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeConcurrentModification))

	events := s.events()
	s.Require().Len(events, 1)
	s.Equal("CONCURRENT_MODIFICATION", events[0].Metadata["reasonCode"])
}

func (s *VerificationSuite) TestDepthGuardIsAuditedAsFailure() {
	ctrl := gomock.NewController(s.T())
	authz := mocks.NewMockAuthorizer(ctrl)
	authz.EXPECT().Evaluate(gomock.Any(), gomock.Any(), s.userU.ID).Return(nil,
		dErrors.New(dErrors.CodeHierarchyDepthExceeded, "hierarchy too deep").WithReason("HIERARCHY_DEPTH_EXCEEDED"))

	k := s.submitKYC(s.userU)
	s.auditLog.Clear()
	svc, err := New(s.records, authz, s.nodes, s.vault,
		WithLogger(s.logger),
		WithAuditPublisher(compliance.New(s.auditLog)),
	)
	s.Require().NoError(err)

	_, err = svc.Transition(s.ctx, s.actor(s.adminA), TransitionRequest{
		Kind: models.KindKYC, RecordID: k.ID, Status: models.StatusVerified,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeHierarchyDepthExceeded))
	s.Equal(models.StatusPending, s.reload(k).Status)

	events := s.events()
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventKYCTransitionFailed), events[0].Action)
	s.Equal("HIERARCHY_DEPTH_EXCEEDED", events[0].Metadata["reasonCode"])
}

// =============================================================================
// Submission and Bank Tests
// =============================================================================

func (s *VerificationSuite) TestSubmitKYC() {
	s.Run("identifiers go to the vault", func() {
		k := s.submitKYC(s.userU)
		fields, err := s.vault.ListForRecord(s.ctx, k.ID, piimodels.PrivilegeFull)
		s.Require().NoError(err)
		s.Require().Len(fields, 2)
		s.ElementsMatch([]piimodels.PIIType{piimodels.PIITypePAN, piimodels.PIITypeAadhaar},
			[]piimodels.PIIType{fields[0].Type, fields[1].Type})

		for _, e := range s.events() {
			for _, v := range e.Metadata {
				if str, ok := v.(string); ok {
					s.NotContains(str, testPAN)
					s.NotContains(str, testAadhaar)
				}
			}
		}
	})

	s.Run("second submission while pending conflicts", func() {
		_, err := s.service.SubmitKYC(s.ctx, s.actor(s.userU), SubmitKYCRequest{
			OwnerID: s.userU.ID, Country: "IN", PAN: testPAN, Aadhaar: testAadhaar,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("submission after rejection reuses the record", func() {
		existing, err := s.records.FindKYCByOwner(s.ctx, s.userU.ID)
		s.Require().NoError(err)
		_, err = s.transition(s.adminA, existing, models.StatusRejected, "blurry")
		s.Require().NoError(err)

		again, err := s.service.SubmitKYC(s.ctx, s.actor(s.userU), SubmitKYCRequest{
			OwnerID: s.userU.ID, Country: "in", PAN: "ZYXWV9876A", Aadhaar: testAadhaar,
		})
		s.Require().NoError(err)
		s.Equal(existing.ID, again.ID)
		s.Equal(models.StatusPending, again.Status)
		s.Nil(again.RejectionReason)
	})
}

func (s *VerificationSuite) TestSubmitKYCFailuresChangeNothing() {
	s.Run("invalid PAN", func() {
		s.auditLog.Clear()
		_, err := s.service.SubmitKYC(s.ctx, s.actor(s.userU), SubmitKYCRequest{
			OwnerID: s.userU.ID, Country: "IN", PAN: "NOT-A-PAN", Aadhaar: testAadhaar,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		_, err = s.records.FindKYCByOwner(s.ctx, s.userU.ID)
		s.ErrorIs(err, sentinel.ErrNotFound)
		s.Equal([]string{string(audit.EventKYCTransitionFailed)}, s.actions())
	})

	s.Run("stranger admin", func() {
		_, err := s.service.SubmitKYC(s.ctx, s.actor(s.adminB), SubmitKYCRequest{
			OwnerID: s.userU.ID, Country: "IN", PAN: testPAN, Aadhaar: testAadhaar,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeAuthorizationDenied))
	})
}

func (s *VerificationSuite) TestAddBankAccount() {
	first := s.addBank(s.userU, false)
	s.True(first.IsPrimary)

	second := s.addBank(s.userU, false)
	s.False(second.IsPrimary)

	third := s.addBank(s.userU, true)
	s.True(third.IsPrimary)
	s.False(s.reload(first).IsPrimary)

	fields, err := s.vault.ListForRecord(s.ctx, second.ID, piimodels.PrivilegeFull)
	s.Require().NoError(err)
	s.Require().Len(fields, 1)
	s.Equal(piimodels.BankScope(second.ID), fields[0].Scope)
	s.Equal(testAccount, fields[0].Display.Value)

	s.Run("invalid details are rejected", func() {
		_, err := s.service.AddBankAccount(s.ctx, s.actor(s.userU), AddBankRequest{
			OwnerID: s.userU.ID, BankName: "HDFC Bank", HolderName: "Asha Rao",
			IFSC: "bad", AccountType: "savings", AccountNumber: testAccount,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *VerificationSuite) TestSetPrimaryBank() {
	first := s.addBank(s.userU, false)
	second := s.addBank(s.userU, false)

	updated, err := s.service.SetPrimaryBank(s.ctx, s.actor(s.adminA), second.ID)
	s.Require().NoError(err)
	s.True(updated.IsPrimary)
	s.False(s.reload(first).IsPrimary)

	_, err = s.service.SetPrimaryBank(s.ctx, s.actor(s.adminB), first.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeAuthorizationDenied))
	s.False(s.reload(first).IsPrimary)
	s.True(s.reload(second).IsPrimary)
}

func (s *VerificationSuite) TestHasVerifiedFundingSource() {
	bank := s.addBank(s.userU, false)

	has, err := s.service.HasVerifiedFundingSource(s.ctx, s.actor(s.adminA), s.userU.ID)
	s.Require().NoError(err)
	s.False(has)

	_, err = s.transition(s.adminA, bank, models.StatusVerified, "")
	s.Require().NoError(err)

	s.auditLog.Clear()
	has, err = s.service.HasVerifiedFundingSource(s.ctx, s.actor(s.userU), s.userU.ID)
	s.Require().NoError(err)
	s.True(has)
	s.Equal([]string{string(audit.EventAccessGranted)}, s.actions())
}

func (s *VerificationSuite) TestIsKYCVerified() {
	k := s.submitKYC(s.userU)
	_, err := s.transition(s.adminA, k, models.StatusVerified, "")
	s.Require().NoError(err)

	verified, err := s.service.IsKYCVerified(s.ctx, s.actor(s.adminA), s.userU.ID)
	s.Require().NoError(err)
	s.True(verified)

	s.auditLog.Clear()
	_, err = s.service.IsKYCVerified(s.ctx, s.actor(s.adminB), s.userU.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeAuthorizationDenied))
	s.Equal([]string{string(audit.EventAccessDenied)}, s.actions())
}

func (s *VerificationSuite) TestOwnerStatus() {
	k := s.submitKYC(s.userU)
	_, err := s.transition(s.adminA, k, models.StatusVerified, "")
	s.Require().NoError(err)
	s.addBank(s.userU, false)

	s.Run("one decision answers both flags", func() {
		s.auditLog.Clear()
		status, err := s.service.OwnerStatus(s.ctx, s.actor(s.adminA), s.userU.ID)
		s.Require().NoError(err)
		s.Equal(s.userU.ID, status.OwnerID)
		s.True(status.IsKYCVerified)
		s.False(status.HasVerifiedFundingSource)
		s.Equal([]string{string(audit.EventAccessGranted)}, s.actions())
	})

	s.Run("denial is audited once", func() {
		s.auditLog.Clear()
		_, err := s.service.OwnerStatus(s.ctx, s.actor(s.adminB), s.userU.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeAuthorizationDenied))
		s.Equal([]string{string(audit.EventAccessDenied)}, s.actions())
	})
}

// =============================================================================
// Interleaving Tests
// =============================================================================

// stallingVault parks the first Store call until release is closed and then
// fails it, holding a submission open mid unit of work.
type stallingVault struct {
	*piiservice.Vault
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newStallingVault(v *piiservice.Vault) *stallingVault {
	return &stallingVault{Vault: v, entered: make(chan struct{}), release: make(chan struct{})}
}

func (v *stallingVault) Store(_ context.Context, _ piiservice.StoreRequest) (*piimodels.Field, error) {
	v.once.Do(func() { close(v.entered) })
	<-v.release
	return nil, errors.New("vault unavailable")
}

// interleave runs hold until the vault stalls, then runs during in parallel,
// lets it reach the owner's lock and releases the vault.
func (s *VerificationSuite) interleave(vault *stallingVault, hold func() error, during func() error) (holdErr, duringErr error) {
	holdDone := make(chan error, 1)
	go func() { holdDone <- hold() }()
	<-vault.entered

	duringDone := make(chan error, 1)
	go func() { duringDone <- during() }()
	time.Sleep(20 * time.Millisecond)

	close(vault.release)
	return <-holdDone, <-duringDone
}

func (s *VerificationSuite) TestFailedResubmissionCannotStrandVerifiedFlag() {
	k := s.submitKYC(s.userU)
	_, err := s.transition(s.adminA, k, models.StatusRejected, "blurred scan")
	s.Require().NoError(err)

	vault := newStallingVault(s.vault)
	svc, err := New(s.records, s.authz, s.nodes, vault,
		WithLogger(s.logger),
		WithAuditPublisher(compliance.New(s.auditLog)),
	)
	s.Require().NoError(err)
	owner, admin := s.actor(s.userU), s.actor(s.adminA)

	submitErr, transitionErr := s.interleave(vault,
		func() error {
			_, err := svc.SubmitKYC(s.ctx, owner, SubmitKYCRequest{
				OwnerID: s.userU.ID, Country: "IN", PAN: testPAN, Aadhaar: testAadhaar,
			})
			return err
		},
		func() error {
			_, err := svc.Transition(s.ctx, admin, TransitionRequest{
				Kind: models.KindKYC, RecordID: k.ID, Status: models.StatusVerified,
			})
			return err
		},
	)

	s.Require().Error(submitErr)
	s.Require().Error(transitionErr)
	s.Equal(models.ReasonIllegalTransition, dErrors.ReasonOf(transitionErr))

	final := s.reload(k)
	s.Equal(models.StatusRejected, final.Status)
	s.Equal(int64(2), final.Version)
	s.False(s.kycFlag(s.userU))
}

func (s *VerificationSuite) TestFailedBankAddCannotRevertCommittedTransition() {
	existing := s.addBank(s.userU, false)
	s.Require().True(existing.IsPrimary)

	vault := newStallingVault(s.vault)
	svc, err := New(s.records, s.authz, s.nodes, vault,
		WithLogger(s.logger),
		WithAuditPublisher(compliance.New(s.auditLog)),
	)
	s.Require().NoError(err)
	s.auditLog.Clear()
	owner, admin := s.actor(s.userU), s.actor(s.adminA)

	addErr, transitionErr := s.interleave(vault,
		func() error {
			_, err := svc.AddBankAccount(s.ctx, owner, AddBankRequest{
				OwnerID: s.userU.ID, BankName: "ICICI Bank", HolderName: "Asha Rao",
				IFSC: "ICIC0004321", AccountType: "current", AccountNumber: "009876543210",
				Primary: true,
			})
			return err
		},
		func() error {
			_, err := svc.Transition(s.ctx, admin, TransitionRequest{
				Kind: models.KindBank, RecordID: existing.ID, Status: models.StatusVerified,
			})
			return err
		},
	)

	s.Require().Error(addErr)
	s.Require().NoError(transitionErr)

	final := s.reload(existing)
	s.Equal(models.StatusVerified, final.Status)
	s.True(final.IsPrimary)
	s.Equal(int64(2), final.Version)

	banks, err := s.records.ListByOwner(s.ctx, s.userU.ID, models.KindBank)
	s.Require().NoError(err)
	s.Len(banks, 1)
	s.Contains(s.actions(), string(audit.EventBankVerified))
}

// =============================================================================
// View and Delete Tests
// =============================================================================

func (s *VerificationSuite) TestViewRecord() {
	k := s.submitKYC(s.userU)

	display := func(view *RecordView) map[piimodels.PIIType]piimodels.DisplayValue {
		out := make(map[piimodels.PIIType]piimodels.DisplayValue)
		for _, f := range view.Fields {
			out[f.Type] = f.Display
		}
		return out
	}

	s.Run("admin over subtree sees grouped values", func() {
		s.auditLog.Clear()
		view, err := s.service.ViewRecord(s.ctx, s.actor(s.adminA), models.KindKYC, k.ID)
		s.Require().NoError(err)
		s.Equal(piimodels.PrivilegeFull, view.Privilege)
		values := display(view)
		s.Equal("AB-CDE-123-4F", values[piimodels.PIITypePAN].Value)
		s.Equal("1234-5678-9012", values[piimodels.PIITypeAadhaar].Value)
		s.Equal([]string{string(audit.EventRecordViewed)}, s.actions())
	})

	s.Run("delegated employee sees masked values", func() {
		view, err := s.service.ViewRecord(s.ctx, s.actor(s.empOfA), models.KindKYC, k.ID)
		s.Require().NoError(err)
		s.Equal(piimodels.PrivilegeMasked, view.Privilege)
		values := display(view)
		s.Equal(piimodels.DisplayMasked, values[piimodels.PIITypePAN].Kind)
		s.Equal("AB****34F", values[piimodels.PIITypePAN].Value)
		s.Equal("****-****-9012", values[piimodels.PIITypeAadhaar].Value)
	})

	s.Run("stranger is denied and audited", func() {
		s.auditLog.Clear()
		_, err := s.service.ViewRecord(s.ctx, s.actor(s.adminB), models.KindKYC, k.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeAuthorizationDenied))
		s.Equal([]string{string(audit.EventAccessDenied)}, s.actions())
	})
}

func (s *VerificationSuite) TestDeleteRecord() {
	k := s.submitKYC(s.userU)
	_, err := s.transition(s.adminA, k, models.StatusVerified, "")
	s.Require().NoError(err)
	s.True(s.kycFlag(s.userU))

	s.Run("stranger cannot delete", func() {
		err := s.service.DeleteRecord(s.ctx, s.actor(s.adminB), models.KindKYC, k.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeAuthorizationDenied))
		s.reload(k)
	})

	s.Run("delete cascades to the vault and clears the flag", func() {
		s.auditLog.Clear()
		s.Require().NoError(s.service.DeleteRecord(s.ctx, s.actor(s.adminA), models.KindKYC, k.ID))

		_, err := s.records.FindByID(s.ctx, k.ID)
		s.ErrorIs(err, sentinel.ErrNotFound)
		fields, err := s.vault.ListForRecord(s.ctx, k.ID, piimodels.PrivilegeFull)
		s.Require().NoError(err)
		s.Empty(fields)
		s.False(s.kycFlag(s.userU))

		events := s.events()
		s.Require().Len(events, 1)
		s.Equal(string(audit.EventRecordDeleted), events[0].Action)
		s.Equal(2, events[0].Metadata["fieldsDestroyed"])
	})
}
