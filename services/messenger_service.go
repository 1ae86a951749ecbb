// Package services holds the resolver layer: it translates the logical
// operations of the contract into record-store calls, enforcing
// authorization and input hygiene. The layer is stateless; every call is
// independent and may run in parallel with any other.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"messenger/contract"
	"messenger/domain"
	apperrors "messenger/errors"
	"messenger/repositories"
)

type IMessengerService interface {
	contract.Resolver
}

// Limits clamps client-supplied page sizes and message lengths.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
	MaxBodyLength   int
}

type MessengerService struct {
	rooms    repositories.IRoomRepository
	messages repositories.IMessageRepository
	limits   Limits
	log      *slog.Logger
}

func NewMessengerService(rooms repositories.IRoomRepository, messages repositories.IMessageRepository,
	limits Limits, log *slog.Logger) IMessengerService {
	return &MessengerService{rooms: rooms, messages: messages, limits: limits, log: log}
}

// authorize is the single authentication gate shared by all operations.
// It runs before validation and before any store access, so an
// unauthenticated call never mutates anything.
func authorize(caller domain.Identity) error {
	if !caller.IsAuthenticated() {
		return apperrors.ErrUnauthenticated
	}
	return nil
}

func (s *MessengerService) ListRooms(ctx context.Context, caller domain.Identity) ([]domain.Room, error) {
	if err := authorize(caller); err != nil {
		return nil, err
	}
	return s.rooms.ListRooms(ctx)
}

func (s *MessengerService) CreateRoom(ctx context.Context, caller domain.Identity,
	req contract.CreateRoomRequest) (domain.Room, error) {
	if err := authorize(caller); err != nil {
		return domain.Room{}, err
	}
	if err := contract.Validate(req); err != nil {
		return domain.Room{}, err
	}
	room := domain.Room{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.rooms.PutRoom(ctx, room); err != nil {
		return domain.Room{}, err
	}
	s.log.Info("room created", "room_id", room.ID, "user_id", caller.UserID)
	return room, nil
}

func (s *MessengerService) ListMessagesForRoom(ctx context.Context, caller domain.Identity,
	req contract.ListMessagesRequest) (contract.MessagePage, error) {
	if err := authorize(caller); err != nil {
		return contract.MessagePage{}, err
	}
	if err := contract.Validate(req); err != nil {
		return contract.MessagePage{}, err
	}
	page := repositories.Page{
		Limit:      s.clampLimit(req.Limit),
		Cursor:     req.Cursor,
		Descending: req.Descending,
	}
	messages, cursor, err := s.messages.ListMessagesByRoom(ctx, req.RoomID, page)
	if err != nil {
		return contract.MessagePage{}, err
	}
	return contract.MessagePage{Messages: messages, Cursor: cursor}, nil
}

// CreateMessage rejects messages for rooms that do not exist instead of
// letting them orphan. The check and the write are not transactional with
// each other; a room deletion racing the write is impossible today since
// rooms are never deleted.
func (s *MessengerService) CreateMessage(ctx context.Context, caller domain.Identity,
	req contract.CreateMessageRequest) (domain.Message, error) {
	if err := authorize(caller); err != nil {
		return domain.Message{}, err
	}
	if err := contract.Validate(req); err != nil {
		return domain.Message{}, err
	}
	if s.limits.MaxBodyLength > 0 && len(req.Body) > s.limits.MaxBodyLength {
		return domain.Message{}, fmt.Errorf("%w: body exceeds %d bytes",
			apperrors.ErrValidation, s.limits.MaxBodyLength)
	}
	if _, err := s.rooms.GetRoom(ctx, req.RoomID); err != nil {
		return domain.Message{}, err
	}
	message := domain.Message{
		ID:        uuid.NewString(),
		RoomID:    req.RoomID,
		AuthorID:  caller.UserID,
		Body:      req.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.PutMessage(ctx, message); err != nil {
		return domain.Message{}, err
	}
	s.log.Info("message created", "message_id", message.ID, "room_id", message.RoomID)
	return message, nil
}

// DeleteMessage only deletes a message on behalf of its author; admins
// may delete anyone's.
func (s *MessengerService) DeleteMessage(ctx context.Context, caller domain.Identity,
	req contract.DeleteMessageRequest) (contract.DeleteConfirmation, error) {
	if err := authorize(caller); err != nil {
		return contract.DeleteConfirmation{}, err
	}
	if err := contract.Validate(req); err != nil {
		return contract.DeleteConfirmation{}, err
	}
	message, err := s.messages.GetMessage(ctx, req.ID)
	if err != nil {
		return contract.DeleteConfirmation{}, err
	}
	if message.AuthorID != caller.UserID && !caller.HasRole(domain.RoleAdmin) {
		return contract.DeleteConfirmation{}, apperrors.ErrForbidden
	}
	if err := s.messages.DeleteMessage(ctx, req.ID); err != nil {
		return contract.DeleteConfirmation{}, err
	}
	s.log.Info("message deleted", "message_id", req.ID, "user_id", caller.UserID)
	return contract.DeleteConfirmation{ID: req.ID}, nil
}

func (s *MessengerService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.limits.DefaultPageSize
	}
	if s.limits.MaxPageSize > 0 && limit > s.limits.MaxPageSize {
		return s.limits.MaxPageSize
	}
	return limit
}
