package repository

import (
	"errors"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTemplateRepository struct {
	DB *gorm.DB
}

func NewDefaultTemplateRepository(db *gorm.DB) *DefaultTemplateRepository {
	return &DefaultTemplateRepository{DB: db}
}

func (r *DefaultTemplateRepository) GetTemplate(storeID, templateID string) (*domain.NotifyTemplate, error) {
	var model models.TemplateModel
	if err := r.DB.First(&model, "store_id = ? AND template_id = ?", storeID, templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}
	return &domain.NotifyTemplate{
		StoreID:         model.StoreID,
		TemplateID:      model.TemplateID,
		Subject:         model.Subject,
		Body:            model.Body,
		Status:          domain.TemplateStatus(model.Status),
		Channel:         domain.Channel(model.Channel),
		Locale:          model.Locale,
		RawSubstitution: model.RawSubstitution,
	}, nil
}

type DefaultStoreRepository struct {
	DB *gorm.DB
}

func NewDefaultStoreRepository(db *gorm.DB) *DefaultStoreRepository {
	return &DefaultStoreRepository{DB: db}
}

func (r *DefaultStoreRepository) GetStore(storeID string) (*domain.Store, error) {
	var model models.StoreModel
	if err := r.DB.First(&model, "id = ?", storeID).Error; err != nil {
		return nil, err
	}
	return &domain.Store{ID: model.ID, Name: model.Name, OwnerUserID: model.OwnerUserID}, nil
}
