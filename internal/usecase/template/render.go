package usecase

import (
	"errors"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type RenderOutput struct {
	Subject string
	Body    string
	Channel domain.Channel
	Locale  string
}

type TemplateUsecase interface {
	RenderTemplate(storeID, templateID string, data domain.TemplateData) (*RenderOutput, error)
}

type DefaultTemplateUsecase struct {
	TemplateRepo domain.TemplateRepository
}

func NewDefaultTemplateUsecase(templateRepo domain.TemplateRepository) *DefaultTemplateUsecase {
	return &DefaultTemplateUsecase{TemplateRepo: templateRepo}
}

// RenderTemplate resolves the exact event+locale template, falling back to
// the store's default-locale template. Substituted values are escaped
// unless the template author opted into raw substitution.
func (uc *DefaultTemplateUsecase) RenderTemplate(storeID, templateID string, data domain.TemplateData) (*RenderOutput, error) {
	if storeID == "" || templateID == "" {
		return nil, status.Error(codes.InvalidArgument, "storeId and templateId are required")
	}

	tmpl, err := uc.TemplateRepo.GetTemplate(storeID, templateID)
	if errors.Is(err, domain.ErrTemplateNotFound) {
		tmpl, err = uc.TemplateRepo.GetTemplate(storeID, fallbackID(templateID))
	}
	if err != nil {
		if errors.Is(err, domain.ErrTemplateNotFound) {
			return nil, status.Errorf(codes.NotFound, "no template for %s", templateID)
		}
		return nil, status.Errorf(codes.Internal, "failed to load template: %v", err)
	}

	if tmpl.Status != domain.TemplatePublished {
		return nil, status.Errorf(codes.FailedPrecondition, "template %s is not published", tmpl.TemplateID)
	}

	subject, err := substitute(tmpl.Subject, data, tmpl.RawSubstitution)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to render subject: %v", err)
	}
	body, err := substitute(tmpl.Body, data, tmpl.RawSubstitution)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to render body: %v", err)
	}

	return &RenderOutput{
		Subject: subject,
		Body:    body,
		Channel: tmpl.Channel,
		Locale:  tmpl.Locale,
	}, nil
}

// fallbackID swaps the locale part of "<event>:<locale>" for the default
// locale.
func fallbackID(templateID string) string {
	idx := strings.LastIndex(templateID, ":")
	if idx < 0 {
		return domain.TemplateID(templateID, domain.DefaultLocale)
	}
	return domain.TemplateID(templateID[:idx], domain.DefaultLocale)
}

func substitute(text string, data domain.TemplateData, raw bool) (string, error) {
	var sb strings.Builder
	if raw {
		t, err := texttemplate.New("msg").Parse(text)
		if err != nil {
			return "", err
		}
		if err := t.Execute(&sb, data); err != nil {
			return "", err
		}
		return sb.String(), nil
	}
	t, err := htmltemplate.New("msg").Parse(text)
	if err != nil {
		return "", err
	}
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
