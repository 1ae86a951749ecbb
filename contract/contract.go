//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks

// Package contract is the typed operation catalogue of the messenger:
// the request and result shape of every logical operation, and the
// dispatch table resolving an operation to a resolver call. Changes must
// be backward compatible: new optional fields only, never a silent type
// change.
package contract

import (
	"context"
	"fmt"

	"messenger/domain"
)

type OperationKind string

const (
	KindListRooms           OperationKind = "listRooms"
	KindCreateRoom          OperationKind = "createRoom"
	KindListMessagesForRoom OperationKind = "listMessagesForRoom"
	KindCreateMessage       OperationKind = "createMessage"
	KindDeleteMessage       OperationKind = "deleteMessage"
)

type CreateRoomRequest struct {
	Name string `json:"name" validate:"required,max=256"`
}

type ListMessagesRequest struct {
	RoomID     string  `json:"roomId" validate:"required"`
	Limit      int     `json:"limit" validate:"omitempty,min=1"`
	Cursor     *string `json:"cursor"`
	Descending bool    `json:"descending"`
}

type CreateMessageRequest struct {
	RoomID string `json:"roomId" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

type DeleteMessageRequest struct {
	ID string `json:"id" validate:"required"`
}

// MessagePage is one bounded slice of a room's history. Cursor is nil on
// the last page, otherwise it resumes the scan where this page stopped.
type MessagePage struct {
	Messages []domain.Message
	Cursor   *string
}

type DeleteConfirmation struct {
	ID string
}

// Operation is a tagged variant: Kind selects which payload field is set.
// Operations without input (listRooms) carry no payload.
type Operation struct {
	Kind          OperationKind
	CreateRoom    *CreateRoomRequest
	ListMessages  *ListMessagesRequest
	CreateMessage *CreateMessageRequest
	DeleteMessage *DeleteMessageRequest
}

// Resolver implements the five logical operations. The identity is always
// an explicit parameter so the layer stays stateless and testable.
type Resolver interface {
	ListRooms(ctx context.Context, caller domain.Identity) ([]domain.Room, error)
	CreateRoom(ctx context.Context, caller domain.Identity, req CreateRoomRequest) (domain.Room, error)
	ListMessagesForRoom(ctx context.Context, caller domain.Identity, req ListMessagesRequest) (MessagePage, error)
	CreateMessage(ctx context.Context, caller domain.Identity, req CreateMessageRequest) (domain.Message, error)
	DeleteMessage(ctx context.Context, caller domain.Identity, req DeleteMessageRequest) (DeleteConfirmation, error)
}

// Result carries the outcome of a dispatched operation; exactly one field
// is set, matching the operation kind.
type Result struct {
	Rooms   []domain.Room
	Room    *domain.Room
	Page    *MessagePage
	Message *domain.Message
	Deleted *DeleteConfirmation
}

// Dispatch resolves one operation through the resolver. A variant whose
// payload is missing, or an unknown kind, is a programming error on the
// caller side and is reported as such.
func Dispatch(ctx context.Context, caller domain.Identity, resolver Resolver, op Operation) (Result, error) {
	switch op.Kind {
	case KindListRooms:
		rooms, err := resolver.ListRooms(ctx, caller)
		if err != nil {
			return Result{}, err
		}
		return Result{Rooms: rooms}, nil
	case KindCreateRoom:
		if op.CreateRoom == nil {
			return Result{}, fmt.Errorf("%s: missing payload", op.Kind)
		}
		room, err := resolver.CreateRoom(ctx, caller, *op.CreateRoom)
		if err != nil {
			return Result{}, err
		}
		return Result{Room: &room}, nil
	case KindListMessagesForRoom:
		if op.ListMessages == nil {
			return Result{}, fmt.Errorf("%s: missing payload", op.Kind)
		}
		page, err := resolver.ListMessagesForRoom(ctx, caller, *op.ListMessages)
		if err != nil {
			return Result{}, err
		}
		return Result{Page: &page}, nil
	case KindCreateMessage:
		if op.CreateMessage == nil {
			return Result{}, fmt.Errorf("%s: missing payload", op.Kind)
		}
		message, err := resolver.CreateMessage(ctx, caller, *op.CreateMessage)
		if err != nil {
			return Result{}, err
		}
		return Result{Message: &message}, nil
	case KindDeleteMessage:
		if op.DeleteMessage == nil {
			return Result{}, fmt.Errorf("%s: missing payload", op.Kind)
		}
		deleted, err := resolver.DeleteMessage(ctx, caller, *op.DeleteMessage)
		if err != nil {
			return Result{}, err
		}
		return Result{Deleted: &deleted}, nil
	default:
		return Result{}, fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}
