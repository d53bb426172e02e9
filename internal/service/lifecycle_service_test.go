package service

import (
	"errors"

	"github.com/servicelink/admin-service/internal/domain"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

func (s *serviceSuite) TestVerifyPendingProvider() {
	acc, prov := s.seedPendingProvider("pat@example.com")
	idDoc := s.store.SeedDocument(domain.Document{ProviderID: prov.ID, Type: domain.DocumentTypeID})
	cert := s.store.SeedDocument(domain.Document{ProviderID: prov.ID, Type: domain.DocumentTypeCertificate})

	record, err := s.lifecycle.VerifyProviderAccount(s.ctx, s.admin, prov.ID, nil)
	s.Require().NoError(err)
	s.Equal(domain.ProviderStatusVerified, record.Status)
	s.True(record.IsProviderVerified)
	s.True(record.User.IsActive)
	s.Equal("pat@example.com", record.User.Email)

	docs := s.documentState(prov.ID)
	s.True(docs[idDoc.ID])
	s.False(docs[cert.ID])

	notes := s.notifications(acc.ID)
	s.Require().Len(notes, 1)
	s.Equal("Account Verified", notes[0].Title)
	s.Equal(domain.NotificationTypeGeneral, notes[0].Type)
	s.False(notes[0].IsRead)

	s.Require().Len(s.mailer.sent, 1)
	s.Equal(sentEmail{address: "pat@example.com", firstName: "Pat"}, s.mailer.sent[0])
}

func (s *serviceSuite) TestVerifyAlreadyVerifiedProviderStaysVerified() {
	acc := s.store.SeedAccount(domain.Account{Email: "v@example.com", Role: domain.RoleProvider, IsActive: false})
	prov := s.store.SeedProvider(acc.ID, true)

	record, err := s.lifecycle.VerifyProviderAccount(s.ctx, s.admin, prov.ID, nil)
	s.Require().NoError(err)
	s.Equal(domain.ProviderStatusVerified, record.Status)
	s.False(record.User.IsActive)
}

func (s *serviceSuite) TestVerifySingleDocument() {
	_, prov := s.seedPendingProvider("pat@example.com")
	idOne := s.store.SeedDocument(domain.Document{ProviderID: prov.ID, Type: domain.DocumentTypeID})
	idTwo := s.store.SeedDocument(domain.Document{ProviderID: prov.ID, Type: domain.DocumentTypeID})
	license := s.store.SeedDocument(domain.Document{ProviderID: prov.ID, Type: domain.DocumentTypeLicense})

	_, err := s.lifecycle.VerifyProviderAccount(s.ctx, s.admin, prov.ID, &license.ID)
	s.Require().NoError(err)

	docs := s.documentState(prov.ID)
	s.True(docs[license.ID])
	s.False(docs[idOne.ID])
	s.False(docs[idTwo.ID])
}

func (s *serviceSuite) TestVerifyForeignDocumentRollsBack() {
	_, prov := s.seedPendingProvider("pat@example.com")
	_, other := s.seedPendingProvider("other@example.com")
	foreign := s.store.SeedDocument(domain.Document{ProviderID: other.ID, Type: domain.DocumentTypeID})

	_, err := s.lifecycle.VerifyProviderAccount(s.ctx, s.admin, prov.ID, &foreign.ID)
	s.requireCode(err, apperrors.CodeNotFound)
	s.Contains(err.Error(), "document")

	s.False(s.provider(prov.ID).Profile.IsProviderVerified)
	s.False(s.documentState(other.ID)[foreign.ID])
	s.Empty(s.mailer.sent)
}

func (s *serviceSuite) TestVerifyDocumentPassFailureLeavesNoPartialState() {
	acc, prov := s.seedPendingProvider("pat@example.com")
	s.store.SeedDocument(domain.Document{ProviderID: prov.ID, Type: domain.DocumentTypeID})
	s.store.InjectFault("documents.MarkVerifiedByType", errBoom())

	_, err := s.lifecycle.VerifyProviderAccount(s.ctx, s.admin, prov.ID, nil)
	s.requireCode(err, apperrors.CodeInternal)

	s.store.ClearFaults()
	s.False(s.provider(prov.ID).Profile.IsProviderVerified)
	s.Empty(s.notifications(acc.ID))
}

func (s *serviceSuite) TestVerifySucceedsWhenSideEffectsFail() {
	acc, prov := s.seedPendingProvider("pat@example.com")
	s.mailer.err = errors.New("smtp down")

	_, err := s.lifecycle.VerifyProviderAccount(s.ctx, s.admin, prov.ID, nil)
	s.Require().NoError(err)
	s.Len(s.notifications(acc.ID), 1)
	s.Len(s.mailer.sent, 1)

	s.store.InjectFault("notifications.Create", errBoom())
	_, err = s.lifecycle.VerifyProviderAccount(s.ctx, s.admin, prov.ID, nil)
	s.Require().NoError(err)
	s.Len(s.mailer.sent, 2)
	s.store.ClearFaults()
	s.Len(s.notifications(acc.ID), 1)
}

func (s *serviceSuite) TestVerifySkipsEmailWithoutAddress() {
	acc := s.store.SeedAccount(domain.Account{Role: domain.RoleProvider, IsActive: true})
	prov := s.store.SeedProvider(acc.ID, false)

	_, err := s.lifecycle.VerifyProviderAccount(s.ctx, s.admin, prov.ID, nil)
	s.Require().NoError(err)
	s.Empty(s.mailer.sent)
	s.Len(s.notifications(acc.ID), 1)
}

func (s *serviceSuite) TestVerifyMissingProvider() {
	_, err := s.lifecycle.VerifyProviderAccount(s.ctx, s.admin, "missing", nil)
	s.requireCode(err, apperrors.CodeNotFound)
	s.Contains(err.Error(), "provider not found")
}

func (s *serviceSuite) TestStateChangesRequireAdmin() {
	acc, prov := s.seedPendingProvider("pat@example.com")
	client := s.store.SeedClient(acc.ID)
	callers := []domain.Caller{
		{},
		{ID: acc.ID, Role: domain.RoleProvider},
		{ID: acc.ID, Role: domain.RoleClient},
		{Role: domain.RoleAdmin},
	}

	for _, caller := range callers {
		_, err := s.lifecycle.VerifyProviderAccount(s.ctx, caller, prov.ID, nil)
		s.requireCode(err, apperrors.CodeUnauthorized)
		_, err = s.lifecycle.RejectProviderVerification(s.ctx, caller, prov.ID, "blurry")
		s.requireCode(err, apperrors.CodeUnauthorized)
		_, err = s.lifecycle.ToggleProviderStatus(s.ctx, caller, prov.ID, false)
		s.requireCode(err, apperrors.CodeUnauthorized)
		_, err = s.lifecycle.ToggleClientStatus(s.ctx, caller, client.ID, false)
		s.requireCode(err, apperrors.CodeUnauthorized)
	}

	p := s.provider(prov.ID)
	s.False(p.Profile.IsProviderVerified)
	s.True(p.Account.IsActive)
	s.Empty(s.notifications(acc.ID))
}

func (s *serviceSuite) TestRejectProvider() {
	acc, prov := s.seedPendingProvider("pat@example.com")

	record, err := s.lifecycle.RejectProviderVerification(s.ctx, s.admin, prov.ID, "blurry ID scan")
	s.Require().NoError(err)

	// The returned record is the provider as it was before the rejection.
	s.Equal(domain.ProviderStatusPending, record.Status)
	s.True(record.User.IsActive)

	p := s.provider(prov.ID)
	s.False(p.Profile.IsProviderVerified)
	s.False(p.Account.IsActive)
	s.Equal(domain.ProviderStatusRejected, p.Status())

	notes := s.notifications(acc.ID)
	s.Require().Len(notes, 1)
	s.Equal("Verification Rejected", notes[0].Title)
	s.Contains(notes[0].Message, "blurry ID scan")
	s.Empty(s.mailer.sent)
}

func (s *serviceSuite) TestRejectVerifiedProvider() {
	acc := s.store.SeedAccount(domain.Account{Email: "v@example.com", Role: domain.RoleProvider, IsActive: true})
	prov := s.store.SeedProvider(acc.ID, true)

	_, err := s.lifecycle.RejectProviderVerification(s.ctx, s.admin, prov.ID, "expired license")
	s.Require().NoError(err)
	s.Equal(domain.ProviderStatusRejected, s.provider(prov.ID).Status())
}

func (s *serviceSuite) TestRejectValidation() {
	_, prov := s.seedPendingProvider("pat@example.com")

	_, err := s.lifecycle.RejectProviderVerification(s.ctx, s.admin, prov.ID, "   ")
	s.requireCode(err, apperrors.CodeValidation)

	_, err = s.lifecycle.RejectProviderVerification(s.ctx, s.admin, "missing", "reason")
	s.requireCode(err, apperrors.CodeNotFound)

	s.True(s.provider(prov.ID).Account.IsActive)
}

func (s *serviceSuite) TestRejectIsAtomic() {
	acc, prov := s.seedPendingProvider("pat@example.com")
	s.store.InjectFault("accounts.SetActive", errBoom())

	_, err := s.lifecycle.RejectProviderVerification(s.ctx, s.admin, prov.ID, "reason")
	s.requireCode(err, apperrors.CodeInternal)
	s.store.ClearFaults()

	p := s.provider(prov.ID)
	s.True(p.Account.IsActive)
	s.Equal(domain.ProviderStatusPending, p.Status())
	s.Empty(s.notifications(acc.ID))
}

func (s *serviceSuite) TestToggleProviderPreservesVerification() {
	acc := s.store.SeedAccount(domain.Account{Email: "v@example.com", Role: domain.RoleProvider, IsActive: true})
	prov := s.store.SeedProvider(acc.ID, true)

	record, err := s.lifecycle.ToggleProviderStatus(s.ctx, s.admin, prov.ID, false)
	s.Require().NoError(err)
	s.False(record.User.IsActive)
	s.True(record.IsProviderVerified)

	record, err = s.lifecycle.ToggleProviderStatus(s.ctx, s.admin, prov.ID, true)
	s.Require().NoError(err)
	s.True(record.User.IsActive)

	p := s.provider(prov.ID)
	s.True(p.Account.IsActive)
	s.True(p.Profile.IsProviderVerified)

	notes := s.notifications(acc.ID)
	s.Require().Len(notes, 2)
	s.Equal("Account Suspended", notes[0].Title)
	s.Equal("Account Reactivated", notes[1].Title)
	s.Contains(notes[1].Message, "offer services")
}

func (s *serviceSuite) TestReactivateRejectedProviderKeepsItUnverified() {
	_, prov := s.seedPendingProvider("pat@example.com")
	_, err := s.lifecycle.RejectProviderVerification(s.ctx, s.admin, prov.ID, "reason")
	s.Require().NoError(err)

	_, err = s.lifecycle.ToggleProviderStatus(s.ctx, s.admin, prov.ID, true)
	s.Require().NoError(err)
	s.Equal(domain.ProviderStatusPending, s.provider(prov.ID).Status())
}

func (s *serviceSuite) TestToggleClientIsNotDeduplicated() {
	acc := s.store.SeedAccount(domain.Account{Email: "c@example.com", Role: domain.RoleClient, IsActive: true})
	client := s.store.SeedClient(acc.ID)

	for i := 0; i < 2; i++ {
		record, err := s.lifecycle.ToggleClientStatus(s.ctx, s.admin, client.ID, true)
		s.Require().NoError(err)
		s.True(record.User.IsActive)
		s.Equal(client.ID, record.ID)
	}

	notes := s.notifications(acc.ID)
	s.Require().Len(notes, 2)
	for _, n := range notes {
		s.Equal("Account Reactivated", n.Title)
		s.Contains(n.Message, "use our services")
	}
}

func (s *serviceSuite) TestToggleClientSuspends() {
	acc := s.store.SeedAccount(domain.Account{Email: "c@example.com", Role: domain.RoleClient, IsActive: true})
	client := s.store.SeedClient(acc.ID)

	record, err := s.lifecycle.ToggleClientStatus(s.ctx, s.admin, client.ID, false)
	s.Require().NoError(err)
	s.False(record.User.IsActive)

	notes := s.notifications(acc.ID)
	s.Require().Len(notes, 1)
	s.Equal("Account Suspended", notes[0].Title)
}

func (s *serviceSuite) TestToggleMissingProfiles() {
	_, err := s.lifecycle.ToggleClientStatus(s.ctx, s.admin, "missing", true)
	s.requireCode(err, apperrors.CodeNotFound)
	_, err = s.lifecycle.ToggleProviderStatus(s.ctx, s.admin, "missing", true)
	s.requireCode(err, apperrors.CodeNotFound)
}

func (s *serviceSuite) TestLifecycleEventsInvalidateDashboard() {
	_, prov := s.seedPendingProvider("pat@example.com")
	_, err := s.queries.DashboardStats(s.ctx)
	s.Require().NoError(err)
	_, cached := s.cache.Get(s.ctx, DashboardStatsKey)
	s.Require().True(cached)

	_, err = s.lifecycle.VerifyProviderAccount(s.ctx, s.admin, prov.ID, nil)
	s.Require().NoError(err)
	_, cached = s.cache.Get(s.ctx, DashboardStatsKey)
	s.False(cached)
}
