package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/events"
	"github.com/servicelink/admin-service/internal/observability"
	"github.com/servicelink/admin-service/internal/repository"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

const (
	titleAccountVerified      = "Account Verified"
	titleVerificationRejected = "Verification Rejected"
	titleAccountReactivated   = "Account Reactivated"
	titleAccountSuspended     = "Account Suspended"

	msgAccountVerified     = "Your service provider account has been verified by an admin. You can now offer services on the platform."
	msgRejectedFmt         = "Your service provider verification was rejected. Reason: %s. Your account has been temporarily deactivated. Please update your information and contact support to reactivate your account."
	msgClientReactivated   = "Your account has been reactivated. You can now log in and use our services."
	msgProviderReactivated = "Your account has been reactivated. You can now log in and offer services on the platform."
	msgAccountSuspended    = "Your account has been temporarily suspended. Please contact support for assistance."
)

// LifecycleService drives provider verification and account activation.
// Every transition commits in one unit of work; notifications and email are
// dispatched as an event afterwards.
type LifecycleService struct {
	tx      repository.TxManager
	metrics *observability.Metrics
	logger  *zap.Logger
	events  publisher
}

// LifecycleDependencies bundles collaborators for LifecycleService.
type LifecycleDependencies struct {
	TxManager  repository.TxManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewLifecycleService constructs the service.
func NewLifecycleService(deps LifecycleDependencies) *LifecycleService {
	logger := orNop(deps.Logger)
	return &LifecycleService{
		tx:      deps.TxManager,
		metrics: deps.Metrics,
		logger:  logger,
		events:  publisher{dispatcher: deps.Dispatcher, logger: logger, metrics: deps.Metrics},
	}
}

// VerifyProviderAccount marks the provider verified. With documentID only that
// document is verified; without it every ID document of the provider is.
func (s *LifecycleService) VerifyProviderAccount(ctx context.Context, caller domain.Caller, providerID string, documentID *string) (*domain.ProviderRecord, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if documentID != nil && strings.TrimSpace(*documentID) == "" {
		documentID = nil
	}
	details := map[string]any{"provider_id": providerID}

	var (
		record   domain.ProviderRecord
		verified int64
	)
	err := s.tx.RunInTx(ctx, func(st repository.Stores) error {
		if _, err := st.Providers.GetByID(ctx, providerID); err != nil {
			return err
		}
		if _, err := st.Providers.SetVerified(ctx, providerID, true); err != nil {
			return err
		}

		if documentID != nil {
			if err := st.Documents.MarkVerified(ctx, providerID, *documentID); err != nil {
				return mapStoreError(err, "document", map[string]any{"provider_id": providerID, "document_id": *documentID})
			}
			verified = 1
		} else {
			n, err := st.Documents.MarkVerifiedByType(ctx, providerID, domain.DocumentTypeID)
			if err != nil {
				return err
			}
			verified = n
		}

		updated, err := st.Providers.GetByID(ctx, providerID)
		if err != nil {
			return err
		}
		record = updated.Record()
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err, "provider", details)
	}

	s.metrics.RecordTransition("provider_verified")
	s.logger.Info("provider verified",
		zap.String("provider_id", providerID),
		zap.String("admin_id", caller.ID),
		zap.Int64("documents_verified", verified))

	event := events.Event{
		Type:         events.EventProviderVerified,
		AccountID:    record.UserID,
		Notification: generalNotification(record.UserID, titleAccountVerified, msgAccountVerified),
		Payload: events.ProviderVerifiedPayload{
			ProviderID:        providerID,
			DocumentID:        documentID,
			DocumentsVerified: verified,
		},
	}
	if record.User.Email != "" {
		event.Email = &events.EmailRequest{Address: record.User.Email, FirstName: record.User.FirstName}
	}
	s.events.publish(ctx, caller, event)

	return &record, nil
}

// RejectProviderVerification clears the verification flag and deactivates the
// account. The returned record is the provider as loaded before the writes.
func (s *LifecycleService) RejectProviderVerification(ctx context.Context, caller domain.Caller, providerID, reason string) (*domain.ProviderRecord, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("rejection reason is required", map[string]any{"field": "reason"})
	}

	var snapshot domain.ProviderRecord
	err := s.tx.RunInTx(ctx, func(st repository.Stores) error {
		provider, err := st.Providers.GetByID(ctx, providerID)
		if err != nil {
			return err
		}
		snapshot = provider.Record()

		if _, err := st.Providers.SetVerified(ctx, providerID, false); err != nil {
			return err
		}
		_, err = st.Accounts.SetActive(ctx, provider.Account.ID, false)
		return err
	})
	if err != nil {
		return nil, mapStoreError(err, "provider", map[string]any{"provider_id": providerID})
	}

	s.metrics.RecordTransition("provider_rejected")
	s.logger.Info("provider rejected",
		zap.String("provider_id", providerID),
		zap.String("admin_id", caller.ID))

	s.events.publish(ctx, caller, events.Event{
		Type:         events.EventProviderRejected,
		AccountID:    snapshot.UserID,
		Notification: generalNotification(snapshot.UserID, titleVerificationRejected, fmt.Sprintf(msgRejectedFmt, reason)),
		Payload:      events.ProviderRejectedPayload{ProviderID: providerID, Reason: reason},
	})

	return &snapshot, nil
}

// ToggleClientStatus sets the client's account active flag. A notification is
// emitted on every call, including when the flag already had that value.
func (s *LifecycleService) ToggleClientStatus(ctx context.Context, caller domain.Caller, clientID string, isActive bool) (*domain.ClientRecord, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	var record domain.ClientRecord
	err := s.tx.RunInTx(ctx, func(st repository.Stores) error {
		client, err := st.Clients.GetByID(ctx, clientID)
		if err != nil {
			return err
		}
		account, err := st.Accounts.SetActive(ctx, client.UserID, isActive)
		if err != nil {
			return err
		}
		record = domain.ClientRecord{Client: *client, User: account.Summary()}
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err, "client", map[string]any{"client_id": clientID})
	}

	title, message := titleAccountSuspended, msgAccountSuspended
	if isActive {
		title, message = titleAccountReactivated, msgClientReactivated
	}
	s.afterToggle(ctx, caller, record.UserID, record.ID, domain.RoleClient, isActive, title, message)
	return &record, nil
}

// ToggleProviderStatus sets the provider's account active flag without
// touching its verification flag.
func (s *LifecycleService) ToggleProviderStatus(ctx context.Context, caller domain.Caller, providerID string, isActive bool) (*domain.ProviderRecord, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	var record domain.ProviderRecord
	err := s.tx.RunInTx(ctx, func(st repository.Stores) error {
		provider, err := st.Providers.GetByID(ctx, providerID)
		if err != nil {
			return err
		}
		account, err := st.Accounts.SetActive(ctx, provider.Account.ID, isActive)
		if err != nil {
			return err
		}
		provider.Account = *account
		record = provider.Record()
		record.Documents = nil
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err, "provider", map[string]any{"provider_id": providerID})
	}

	title, message := titleAccountSuspended, msgAccountSuspended
	if isActive {
		title, message = titleAccountReactivated, msgProviderReactivated
	}
	s.afterToggle(ctx, caller, record.UserID, record.ID, domain.RoleProvider, isActive, title, message)
	return &record, nil
}

func (s *LifecycleService) afterToggle(ctx context.Context, caller domain.Caller, accountID, profileID string, role domain.Role, isActive bool, title, message string) {
	transition := "account_suspended"
	if isActive {
		transition = "account_reactivated"
	}
	s.metrics.RecordTransition(transition)
	s.logger.Info("account status changed",
		zap.String("account_id", accountID),
		zap.String("role", string(role)),
		zap.Bool("is_active", isActive),
		zap.String("admin_id", caller.ID))

	s.events.publish(ctx, caller, events.Event{
		Type:         events.EventAccountStatusChanged,
		AccountID:    accountID,
		Notification: generalNotification(accountID, title, message),
		Payload:      events.AccountStatusChangedPayload{ProfileID: profileID, Role: role, IsActive: isActive},
	})
}
