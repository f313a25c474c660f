package usecase

import (
	"testing"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeTemplateRepo struct {
	templates map[string]*domain.NotifyTemplate
}

func newFakeTemplateRepo(templates ...*domain.NotifyTemplate) *fakeTemplateRepo {
	repo := &fakeTemplateRepo{templates: make(map[string]*domain.NotifyTemplate)}
	for _, tmpl := range templates {
		repo.templates[tmpl.StoreID+"/"+tmpl.TemplateID] = tmpl
	}
	return repo
}

func (r *fakeTemplateRepo) GetTemplate(storeID, templateID string) (*domain.NotifyTemplate, error) {
	tmpl, ok := r.templates[storeID+"/"+templateID]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return tmpl, nil
}

func publishedTemplate(templateID, locale string) *domain.NotifyTemplate {
	return &domain.NotifyTemplate{
		StoreID:    "store-1",
		TemplateID: templateID,
		Subject:    "주문 {{.OrderNo}}",
		Body:       "{{.MerchantName}}: order {{.OrderNo}} is {{.Status}}",
		Status:     domain.TemplatePublished,
		Channel:    domain.ChannelPush,
		Locale:     locale,
	}
}

func sampleData() domain.TemplateData {
	return domain.TemplateData{
		MerchantName: "마루식당",
		OrderNo:      "A1B2C3D4E5",
		Status:       "CONFIRMED",
	}
}

func TestRenderTemplateExactMatch(t *testing.T) {
	repo := newFakeTemplateRepo(publishedTemplate("order.confirmed:ko", "ko"))
	uc := NewDefaultTemplateUsecase(repo)

	out, err := uc.RenderTemplate("store-1", "order.confirmed:ko", sampleData())
	if err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}
	if out.Subject != "주문 A1B2C3D4E5" {
		t.Errorf("subject = %q", out.Subject)
	}
	if out.Body != "마루식당: order A1B2C3D4E5 is CONFIRMED" {
		t.Errorf("body = %q", out.Body)
	}
	if out.Locale != "ko" {
		t.Errorf("locale = %q, want ko", out.Locale)
	}
}

func TestRenderTemplateLocaleFallback(t *testing.T) {
	repo := newFakeTemplateRepo(publishedTemplate("order.confirmed:default", "default"))
	uc := NewDefaultTemplateUsecase(repo)

	out, err := uc.RenderTemplate("store-1", "order.confirmed:en", sampleData())
	if err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}
	if out.Locale != "default" {
		t.Errorf("locale = %q, want fallback to default", out.Locale)
	}
}

func TestRenderTemplateNotFound(t *testing.T) {
	uc := NewDefaultTemplateUsecase(newFakeTemplateRepo())

	_, err := uc.RenderTemplate("store-1", "order.confirmed:ko", sampleData())
	if status.Code(err) != codes.NotFound {
		t.Errorf("got %v, want NotFound", err)
	}
}

func TestRenderTemplateUnpublished(t *testing.T) {
	tmpl := publishedTemplate("order.confirmed:ko", "ko")
	tmpl.Status = domain.TemplateDraft
	uc := NewDefaultTemplateUsecase(newFakeTemplateRepo(tmpl))

	_, err := uc.RenderTemplate("store-1", "order.confirmed:ko", sampleData())
	if status.Code(err) != codes.FailedPrecondition {
		t.Errorf("got %v, want FailedPrecondition", err)
	}
}

func TestRenderTemplateEscaping(t *testing.T) {
	tmpl := publishedTemplate("order.confirmed:ko", "ko")
	tmpl.Body = "note: {{.Note}}"
	uc := NewDefaultTemplateUsecase(newFakeTemplateRepo(tmpl))

	data := sampleData()
	data.Note = `<script>alert("x")</script>`
	out, err := uc.RenderTemplate("store-1", "order.confirmed:ko", data)
	if err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}
	if out.Body == "note: "+data.Note {
		t.Error("substituted markup must be escaped by default")
	}
}

func TestRenderTemplateRawSubstitution(t *testing.T) {
	tmpl := publishedTemplate("order.confirmed:ko", "ko")
	tmpl.Body = "note: {{.Note}}"
	tmpl.RawSubstitution = true
	uc := NewDefaultTemplateUsecase(newFakeTemplateRepo(tmpl))

	data := sampleData()
	data.Note = "<b>bold</b>"
	out, err := uc.RenderTemplate("store-1", "order.confirmed:ko", data)
	if err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}
	if out.Body != "note: <b>bold</b>" {
		t.Errorf("body = %q, raw substitution must keep markup", out.Body)
	}
}

func TestFallbackID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"order.confirmed:ko", "order.confirmed:default"},
		{"order.confirmed:default", "order.confirmed:default"},
		{"order.confirmed", "order.confirmed:default"},
	}
	for _, tt := range tests {
		if got := fallbackID(tt.in); got != tt.want {
			t.Errorf("fallbackID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
