// File: internal/kudo/service.go
package kudo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kudos_web/internal/config"
	"kudos_web/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultRecentLimit = 3

// RecipientLookup resolves the receiving user of a kudo.
type RecipientLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Service sends kudos and reads the home page feeds.
type Service interface {
	Send(ctx context.Context, authorID, recipientID uuid.UUID, input SendInput) (*Kudo, error)
	Feed(ctx context.Context, recipientID uuid.UUID, q FeedQuery) ([]Kudo, error)
	Recent(ctx context.Context) ([]Kudo, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo           Repository
	users          RecipientLookup
	allowSelfKudos bool
	recentLimit    int
	logger         *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new kudo service.
func NewService(repo Repository, users RecipientLookup, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	limit := cfg.RecentKudosLimit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return &ServiceImplementation{
		repo:           repo,
		users:          users,
		allowSelfKudos: cfg.AllowSelfKudos,
		recentLimit:    limit,
		logger:         logger,
	}
}

// Send validates and stores a kudo from authorID to recipientID.
func (s *ServiceImplementation) Send(ctx context.Context, authorID, recipientID uuid.UUID, input SendInput) (*Kudo, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	style, err := resolveStyle(input)
	if err != nil {
		return nil, err
	}
	if authorID == recipientID && !s.allowSelfKudos {
		return nil, ErrSelfKudo
	}
	if _, err := s.users.GetUserByID(ctx, recipientID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("look up recipient: %w", err)
	}

	k := &Kudo{
		Message:     message,
		Style:       style,
		AuthorID:    authorID,
		RecipientID: recipientID,
	}
	if err := s.repo.Create(ctx, k); err != nil {
		s.logger.Error("Failed to store kudo", zap.Error(err),
			zap.String("authorID", authorID.String()), zap.String("recipientID", recipientID.String()))
		return nil, err
	}
	s.logger.Info("Kudo sent", zap.String("kudoID", k.ID.String()))
	return k, nil
}

func (s *ServiceImplementation) Feed(ctx context.Context, recipientID uuid.UUID, q FeedQuery) ([]Kudo, error) {
	return s.repo.Feed(ctx, recipientID, q)
}

// Recent returns the newest kudos, RECENT_KUDOS_LIMIT of them.
func (s *ServiceImplementation) Recent(ctx context.Context) ([]Kudo, error) {
	return s.repo.Recent(ctx, s.recentLimit)
}

func resolveStyle(input SendInput) (Style, error) {
	style := DefaultStyle()
	if input.BackgroundColor != "" {
		style.BackgroundColor = Color(input.BackgroundColor)
	}
	if input.TextColor != "" {
		style.TextColor = Color(input.TextColor)
	}
	if input.Emoji != "" {
		style.Emoji = Emoji(input.Emoji)
	}
	if !style.BackgroundColor.Valid() || !style.TextColor.Valid() || !style.Emoji.Valid() {
		return Style{}, ErrInvalidStyle
	}
	return style, nil
}
