package models

import "time"

type PreferenceModel struct {
	UserID       string `gorm:"primaryKey"`
	Locale       string `gorm:"default:ko"`
	OptedOutJSON string `gorm:"type:jsonb;default:'[]'"`
	ChannelsJSON string `gorm:"type:jsonb;default:'[\"push\"]'"`
	QuietEnabled bool
	QuietStart   string
	QuietEnd     string
	UpdatedAt    time.Time
}

func (PreferenceModel) TableName() string {
	return "notification_preferences"
}

type TemplateModel struct {
	StoreID         string `gorm:"primaryKey"`
	TemplateID      string `gorm:"primaryKey"`
	Subject         string
	Body            string
	Status          string `gorm:"default:draft"`
	Channel         string
	Locale          string
	RawSubstitution bool
	UpdatedAt       time.Time
}

func (TemplateModel) TableName() string {
	return "notify_templates"
}

type FailureModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	StoreID   string
	Channel   string `gorm:"not null"`
	Recipient string
	Subject   string
	Body      string
	Reason    string
	Attempts  int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (FailureModel) TableName() string {
	return "notification_failures"
}

type DeferredModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	StoreID      string
	OrderID      string
	UserID       string `gorm:"index"`
	Subject      string
	Body         string
	DeliverAfter time.Time `gorm:"index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (DeferredModel) TableName() string {
	return "deferred_notifications"
}

type PushTokenModel struct {
	UserID     string `gorm:"primaryKey"`
	Token      string `gorm:"primaryKey"`
	Platform   string
	LastUsedAt time.Time `gorm:"index"`
}

func (PushTokenModel) TableName() string {
	return "push_tokens"
}

// DispatchControlModel is a single-row table; Version bumps on every
// operator toggle so replicas can tell a fresh read from a stale one.
type DispatchControlModel struct {
	ID      int  `gorm:"primaryKey;default:1"`
	Version int64
	Paused  bool
}

func (DispatchControlModel) TableName() string {
	return "dispatch_controls"
}
