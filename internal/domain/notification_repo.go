package domain

import "time"

type NotificationRepository interface {
	GetPreference(userID string) (*NotificationPreference, error)
	GetDispatchControl() (*DispatchControl, error)

	CreateFailure(failure *NotificationFailure) error
	GetFailure(failureID string) (*NotificationFailure, error)
	DeleteFailure(failureID string) error
	BumpFailureAttempts(failureID string) error

	CreateDeferred(deferred *DeferredNotification) error
	// ClaimDueDeferred removes and returns entries whose deliver-after time
	// has passed, so two replicas never redeliver the same deferral.
	ClaimDueDeferred(now time.Time, limit int) ([]*DeferredNotification, error)

	ListPushTokens(userID string) ([]*PushToken, error)
	ListTokenOwners() ([]string, error)
	DeleteStaleTokens(userID string, olderThan time.Time) (int64, error)
}

type TemplateRepository interface {
	GetTemplate(storeID, templateID string) (*NotifyTemplate, error)
}
