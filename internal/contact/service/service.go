package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meridiantrade/catalog-services/internal/contact"
	"github.com/meridiantrade/catalog-services/internal/contact/repository"
	"github.com/meridiantrade/catalog-services/pkg/logger"
	"github.com/meridiantrade/catalog-services/pkg/metrics"
)

// ErrDelivery means the message was stored but the email could not be sent.
var ErrDelivery = errors.New("email delivery failed")

// Service stores contact messages and forwards them by email.
type Service struct {
	repo   repository.Repository
	mailer Mailer
}

// NewService wires the service. mailer may be nil, in which case messages
// are only stored.
func NewService(repo repository.Repository, mailer Mailer) *Service {
	s := &Service{repo: repo}
	// keep a typed nil *SMTPMailer from becoming a non-nil interface
	if m, ok := mailer.(*SMTPMailer); !ok || m != nil {
		s.mailer = mailer
	}
	return s
}

func NewMemoryService(mailer Mailer) *Service {
	return NewService(repository.NewMemoryRepo(), mailer)
}

// Submit stores the message and emails it. A mail failure returns the stored
// message together with an error wrapping ErrDelivery.
func (s *Service) Submit(ctx context.Context, req contact.Request) (*contact.Message, error) {
	m := &contact.Message{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Company: strings.TrimSpace(req.Company),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if _, err := s.repo.Create(ctx, m); err != nil {
		metrics.ContactMessages.WithLabelValues("store_failed").Inc()
		return nil, fmt.Errorf("store contact message: %w", err)
	}
	if s.mailer == nil {
		metrics.ContactMessages.WithLabelValues("stored").Inc()
		logger.Infof("contact message %s stored (mail not configured)", m.ID)
		return m, nil
	}
	if err := s.mailer.Send(ctx, m); err != nil {
		metrics.ContactMessages.WithLabelValues("mail_failed").Inc()
		logger.Errorf("contact message %s: %v", m.ID, err)
		return m, fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	if err := s.repo.MarkEmailed(ctx, m.ID); err != nil {
		logger.Warnf("contact message %s emailed but not marked: %v", m.ID, err)
	}
	m.Emailed = true
	metrics.ContactMessages.WithLabelValues("emailed").Inc()
	return m, nil
}

// List returns the newest messages for the admin panel.
func (s *Service) List(ctx context.Context, limit int) ([]*contact.Message, error) {
	return s.repo.List(ctx, limit)
}
