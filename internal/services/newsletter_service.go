package services

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/repositories"
	"github.com/youdeservebetter/backend/internal/util"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email matches local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NewsletterService records newsletter signups, at most one per email.
type NewsletterService struct {
	subs   repositories.SubscriptionRepository
	clock  util.Clock
	logger *slog.Logger
}

// NewNewsletterService creates a new newsletter service
func NewNewsletterService(subs repositories.SubscriptionRepository, clock util.Clock, logger *slog.Logger) *NewsletterService {
	return &NewsletterService{subs: subs, clock: clock, logger: logger}
}

// Subscribe normalizes and validates email and inserts an active
// subscription keyed by it. An existing subscription yields
// AlreadySubscribed with no write and no error.
func (s *NewsletterService) Subscribe(ctx context.Context, email, source string) (models.SubscribeResult, *models.Subscription, error) {
	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return models.InvalidEmail, nil, domain.NewValidation("Please enter a valid email address")
	}

	sub := &models.Subscription{
		Email:        email,
		SubscribedAt: s.clock.NowUtc(),
		Status:       models.SubscriptionStatusActive,
		Source:       strings.TrimSpace(source),
	}
	if err := s.subs.CreateSubscription(ctx, sub); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return models.AlreadySubscribed, nil, nil
		}
		return "", nil, err
	}

	s.logger.Info("newsletter subscription created", "source", sub.Source)
	return models.Subscribed, sub, nil
}
