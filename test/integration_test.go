package test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"messenger/contract"
	"messenger/domain"
	apperrors "messenger/errors"
	"messenger/repositories"
	"messenger/services"
)

// Test_Scenario drives the resolver layer against a real BadgerDB,
// covering the whole message lifecycle: room creation, posting, paged
// listing, authorization on delete, and idempotent failure on replays.
func Test_Scenario(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	// Reduced to 16 Mo for testing (avoid 20 Go of storage)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	defer db.Close()

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	service := services.NewMessengerService(
		repositories.NewRoomRepository(db),
		repositories.NewMessageRepository(db, log),
		services.Limits{DefaultPageSize: 50, MaxPageSize: 200, MaxBodyLength: 1000},
		log,
	)

	alice := domain.Identity{UserID: "alice", Roles: []string{"user"}}
	bob := domain.Identity{UserID: "bob", Roles: []string{"user"}}

	// 1. Alice creates a room and posts into it
	room, err := service.CreateRoom(ctx, alice, contract.CreateRoomRequest{Name: "general"})
	req.NoError(err)

	first, err := service.CreateMessage(ctx, alice, contract.CreateMessageRequest{RoomID: room.ID, Body: "hi"})
	req.NoError(err)
	req.Equal(alice.UserID, first.AuthorID)

	// 2. Posting into a room that does not exist is rejected
	_, err = service.CreateMessage(ctx, alice, contract.CreateMessageRequest{RoomID: "nonexistent", Body: "hi"})
	req.ErrorIs(err, apperrors.ErrRoomNotFound)

	// 3. Bob fills the room; pages are disjoint and ordered
	var posted []string
	posted = append(posted, first.ID)
	for _, body := range []string{"hello", "how are you", "fine", "bye"} {
		message, err := service.CreateMessage(ctx, bob, contract.CreateMessageRequest{RoomID: room.ID, Body: body})
		req.NoError(err)
		posted = append(posted, message.ID)
	}

	var listed []string
	var cursor *string
	for {
		page, err := service.ListMessagesForRoom(ctx, alice, contract.ListMessagesRequest{
			RoomID: room.ID,
			Limit:  2,
			Cursor: cursor,
		})
		req.NoError(err)
		for _, message := range page.Messages {
			listed = append(listed, message.ID)
		}
		if page.Cursor == nil {
			break
		}
		cursor = page.Cursor
	}
	req.Equal(posted, listed)

	// 4. Bob cannot delete Alice's message, and it stays retrievable
	_, err = service.DeleteMessage(ctx, bob, contract.DeleteMessageRequest{ID: first.ID})
	req.ErrorIs(err, apperrors.ErrForbidden)

	page, err := service.ListMessagesForRoom(ctx, alice, contract.ListMessagesRequest{RoomID: room.ID})
	req.NoError(err)
	req.Len(page.Messages, 5)

	// 5. Alice deletes her own message; replaying the delete fails cleanly
	_, err = service.DeleteMessage(ctx, alice, contract.DeleteMessageRequest{ID: first.ID})
	req.NoError(err)

	page, err = service.ListMessagesForRoom(ctx, alice, contract.ListMessagesRequest{RoomID: room.ID})
	req.NoError(err)
	req.Len(page.Messages, 4)
	for _, message := range page.Messages {
		req.NotEqual(first.ID, message.ID)
	}

	_, err = service.DeleteMessage(ctx, alice, contract.DeleteMessageRequest{ID: first.ID})
	req.ErrorIs(err, apperrors.ErrMessageNotFound)
}
