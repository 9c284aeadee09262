package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KhinMyintMyatThu/you-app-backend/internal/apperrors"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/events"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/metrics"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/models"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/repository"
)

// MessageService enforces conversation access control, persists messages in
// time order and mirrors each send onto the notification channel.
type MessageService struct {
	users repository.UserRepository
	store repository.MessageStore
	pub   events.Publisher
	log   *zap.SugaredLogger
}

func NewMessageService(users repository.UserRepository, store repository.MessageStore, pub events.Publisher, log *zap.SugaredLogger) *MessageService {
	return &MessageService{users: users, store: store, pub: pub, log: log}
}

// SendMessage persists a message from sender to receiver and publishes a
// best-effort message_received event. callerIdentity must match the resolved
// sender's email; a caller can never send as someone else. Existence of both
// parties is established before the authorization check, so an unknown party
// surfaces as ErrNotFound rather than leaking through ErrForbidden.
func (s *MessageService) SendMessage(ctx context.Context, senderName, receiverName, content, callerIdentity string) (*models.Message, error) {
	senderUser, _, err := s.resolvePair(ctx, senderName, receiverName)
	if err != nil {
		return nil, err
	}
	if senderUser.Email != callerIdentity {
		return nil, apperrors.ErrForbidden
	}

	msg, err := s.store.Insert(ctx, &models.Message{
		Sender:   senderName,
		Receiver: receiverName,
		Content:  content,
	})
	if err != nil {
		s.log.Errorw("message insert failed", "sender", senderName, "receiver", receiverName, "err", err)
		return nil, fmt.Errorf("persist message: %w", apperrors.ErrInternal)
	}
	metrics.MessagesSent.Inc()

	// Publish only after the write is durable. A failed publish drops the
	// event; it never rolls back or fails the send.
	payload := events.MessageReceived{Sender: senderName, Receiver: receiverName, Content: content}
	if err := s.pub.Publish(ctx, events.ChannelDefault, events.EventMessageReceived, payload); err != nil {
		metrics.NotificationPublishFailures.Inc()
		s.log.Warnw("notification publish failed", "sender", senderName, "receiver", receiverName, "err", err)
	}

	return msg, nil
}

// GetMessages returns the full bidirectional conversation between the two
// parties, ascending by timestamp. callerIdentity must match the resolved
// identity of partyA, the party presented as the requester.
func (s *MessageService) GetMessages(ctx context.Context, partyA, partyB, callerIdentity string) ([]*models.Message, error) {
	userA, _, err := s.resolvePair(ctx, partyA, partyB)
	if err != nil {
		return nil, err
	}
	if userA.Email != callerIdentity {
		return nil, apperrors.ErrForbidden
	}

	msgs, err := s.store.FindConversation(ctx, partyA, partyB)
	if err != nil {
		s.log.Errorw("conversation query failed", "partyA", partyA, "partyB", partyB, "err", err)
		return nil, fmt.Errorf("load conversation: %w", apperrors.ErrInternal)
	}
	return msgs, nil
}

// BuildMessageResponse projects a persisted message into its public shape.
func (s *MessageService) BuildMessageResponse(m *models.Message) models.MessageResponse {
	return models.MessageResponse{
		Sender:   m.Sender,
		Receiver: m.Receiver,
		Content:  m.Content,
	}
}

// resolvePair looks up both usernames concurrently. The lookups are
// independent; the write that follows waits for both.
func (s *MessageService) resolvePair(ctx context.Context, a, b string) (*models.User, *models.User, error) {
	var userA, userB *models.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userA, err = s.users.FindByUsername(gctx, a)
		return err
	})
	g.Go(func() error {
		var err error
		userB, err = s.users.FindByUsername(gctx, b)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		s.log.Errorw("user lookup failed", "err", err)
		return nil, nil, fmt.Errorf("resolve users: %w", apperrors.ErrInternal)
	}
	return userA, userB, nil
}
