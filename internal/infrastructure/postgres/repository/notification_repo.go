package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultNotificationRepository struct {
	DB *gorm.DB
}

func NewDefaultNotificationRepository(db *gorm.DB) *DefaultNotificationRepository {
	return &DefaultNotificationRepository{DB: db}
}

func (r *DefaultNotificationRepository) GetPreference(userID string) (*domain.NotificationPreference, error) {
	var model models.PreferenceModel
	if err := r.DB.First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPreferenceNotFound
		}
		return nil, err
	}

	var optedOut []string
	if model.OptedOutJSON != "" {
		if err := json.Unmarshal([]byte(model.OptedOutJSON), &optedOut); err != nil {
			return nil, err
		}
	}
	var channels []domain.Channel
	if model.ChannelsJSON != "" {
		if err := json.Unmarshal([]byte(model.ChannelsJSON), &channels); err != nil {
			return nil, err
		}
	}

	return &domain.NotificationPreference{
		UserID:   model.UserID,
		Locale:   model.Locale,
		OptedOut: optedOut,
		QuietHours: domain.QuietHours{
			Enabled: model.QuietEnabled,
			Start:   model.QuietStart,
			End:     model.QuietEnd,
		},
		Channels: channels,
	}, nil
}

func (r *DefaultNotificationRepository) GetDispatchControl() (*domain.DispatchControl, error) {
	var model models.DispatchControlModel
	if err := r.DB.First(&model, "id = ?", 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// no row yet means nobody has pulled the kill-switch
			return &domain.DispatchControl{}, nil
		}
		return nil, err
	}
	return &domain.DispatchControl{Version: model.Version, Paused: model.Paused}, nil
}

func (r *DefaultNotificationRepository) CreateFailure(failure *domain.NotificationFailure) error {
	model := models.FailureModel{
		ID:        failure.ID,
		StoreID:   failure.StoreID,
		Channel:   string(failure.Channel),
		Recipient: failure.Recipient,
		Subject:   failure.Subject,
		Body:      failure.Body,
		Reason:    failure.Reason,
		Attempts:  failure.Attempts,
	}
	if err := r.DB.Create(&model).Error; err != nil {
		return err
	}
	failure.CreatedAt = model.CreatedAt
	return nil
}

func (r *DefaultNotificationRepository) GetFailure(failureID string) (*domain.NotificationFailure, error) {
	var model models.FailureModel
	if err := r.DB.First(&model, "id = ?", failureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFailureNotFound
		}
		return nil, err
	}
	return &domain.NotificationFailure{
		ID:        model.ID,
		StoreID:   model.StoreID,
		Channel:   domain.Channel(model.Channel),
		Recipient: model.Recipient,
		Subject:   model.Subject,
		Body:      model.Body,
		Reason:    model.Reason,
		Attempts:  model.Attempts,
		CreatedAt: model.CreatedAt,
	}, nil
}

func (r *DefaultNotificationRepository) DeleteFailure(failureID string) error {
	return r.DB.Delete(&models.FailureModel{}, "id = ?", failureID).Error
}

func (r *DefaultNotificationRepository) BumpFailureAttempts(failureID string) error {
	return r.DB.Model(&models.FailureModel{}).
		Where("id = ?", failureID).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *DefaultNotificationRepository) CreateDeferred(deferred *domain.DeferredNotification) error {
	model := models.DeferredModel{
		ID:           deferred.ID,
		StoreID:      deferred.StoreID,
		OrderID:      deferred.OrderID,
		UserID:       deferred.UserID,
		Subject:      deferred.Subject,
		Body:         deferred.Body,
		DeliverAfter: deferred.DeliverAfter,
	}
	return r.DB.Create(&model).Error
}

// ClaimDueDeferred deletes due rows and returns them in one transaction, so
// concurrent processor replicas never pick the same deferral twice.
func (r *DefaultNotificationRepository) ClaimDueDeferred(now time.Time, limit int) ([]*domain.DeferredNotification, error) {
	var claimed []*domain.DeferredNotification

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var rows []models.DeferredModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("deliver_after <= ?", now).
			Order("deliver_after").
			Limit(limit).
			Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]string, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
			claimed = append(claimed, &domain.DeferredNotification{
				ID:           row.ID,
				StoreID:      row.StoreID,
				OrderID:      row.OrderID,
				UserID:       row.UserID,
				Subject:      row.Subject,
				Body:         row.Body,
				DeliverAfter: row.DeliverAfter,
				CreatedAt:    row.CreatedAt,
			})
		}
		return tx.Delete(&models.DeferredModel{}, "id IN (?)", ids).Error
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *DefaultNotificationRepository) ListPushTokens(userID string) ([]*domain.PushToken, error) {
	var rows []models.PushTokenModel
	if err := r.DB.Find(&rows, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	tokens := make([]*domain.PushToken, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, &domain.PushToken{
			UserID:     row.UserID,
			Token:      row.Token,
			Platform:   row.Platform,
			LastUsedAt: row.LastUsedAt,
		})
	}
	return tokens, nil
}

func (r *DefaultNotificationRepository) ListTokenOwners() ([]string, error) {
	var owners []string
	if err := r.DB.Model(&models.PushTokenModel{}).
		Distinct("user_id").
		Pluck("user_id", &owners).Error; err != nil {
		return nil, err
	}
	return owners, nil
}

func (r *DefaultNotificationRepository) DeleteStaleTokens(userID string, olderThan time.Time) (int64, error) {
	result := r.DB.Delete(&models.PushTokenModel{}, "user_id = ? AND last_used_at < ?", userID, olderThan)
	return result.RowsAffected, result.Error
}
