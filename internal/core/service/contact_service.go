package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/ports"
)

// ContactService stores contact-form leads in the frontend's own inbox.
type ContactService struct {
	repo ports.ContactRepository
	log  zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, log zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, log: log}
}

// ContactLogSink is the repository used when Mongo is not configured:
// leads are logged rather than dropped.
type ContactLogSink struct {
	log zerolog.Logger
}

func NewContactLogSink(log zerolog.Logger) ports.ContactRepository {
	return &ContactLogSink{log: log}
}

func (s *ContactLogSink) Insert(_ context.Context, msg *domain.ContactMessage) error {
	s.log.Info().
		Str("name", msg.Name).
		Str("email", msg.Email).
		Str("subject", msg.Subject).
		Msg("contact message (no inbox configured)")
	return nil
}

// Submit timestamps and persists a message.
func (s *ContactService) Submit(ctx context.Context, msg *domain.ContactMessage) error {
	msg.ReceivedAt = time.Now().UTC()
	if err := s.repo.Insert(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("email", msg.Email).Msg("storing contact message failed")
		return err
	}
	s.log.Info().Str("email", msg.Email).Str("subject", msg.Subject).Msg("contact message received")
	return nil
}
