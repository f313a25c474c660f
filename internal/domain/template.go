package domain

type TemplateStatus string

const (
	TemplatePublished TemplateStatus = "published"
	TemplateDraft     TemplateStatus = "draft"
)

// DefaultLocale is the required fallback locale for message templates.
const DefaultLocale = "default"

// NotifyTemplate is keyed by "<event>:<locale>" per store. Only published
// templates render; RawSubstitution skips HTML escaping and is an explicit
// template-author opt-in.
type NotifyTemplate struct {
	StoreID         string
	TemplateID      string
	Subject         string
	Body            string
	Status          TemplateStatus
	Channel         Channel
	Locale          string
	RawSubstitution bool
}

func TemplateID(event, locale string) string {
	return event + ":" + locale
}

// TemplateData is the event payload substituted into subject and body.
type TemplateData struct {
	MerchantName string
	OrderNo      string
	Status       string
	Note         string
	OccurredAt   string
}
