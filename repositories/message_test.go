package repositories

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"messenger/domain"
	apperrors "messenger/errors"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testMessage(roomID, id string, at time.Time) domain.Message {
	return domain.Message{
		ID:        id,
		RoomID:    roomID,
		AuthorID:  "alice",
		Body:      "this message will self destruct in 5 seconds",
		CreatedAt: at,
	}
}

func Test_Messages_Listed_In_Chronological_Order(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())
	ctx := context.Background()

	roomID := uuid.NewString()
	at := time.Now().UTC()
	expected := []domain.Message{
		testMessage(roomID, uuid.NewString(), at),
		testMessage(roomID, uuid.NewString(), at.Add(1*time.Minute)),
		testMessage(roomID, uuid.NewString(), at.Add(2*time.Minute)),
	}
	// Insert out of order on purpose; the index must restore it.
	for _, i := range []int{2, 0, 1} {
		req.NoError(repository.PutMessage(ctx, expected[i]))
	}

	fetched, cursor, err := repository.ListMessagesByRoom(ctx, roomID, Page{Limit: 10})
	req.NoError(err)
	req.Nil(cursor)
	req.Equal(expected, fetched)
}

func Test_Messages_Tie_Broken_By_ID(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())
	ctx := context.Background()

	roomID := uuid.NewString()
	at := time.Now().UTC()
	first := testMessage(roomID, "aaaa-0001", at)
	second := testMessage(roomID, "bbbb-0002", at)
	req.NoError(repository.PutMessage(ctx, second))
	req.NoError(repository.PutMessage(ctx, first))

	// Same timestamp: order falls back to id and stays stable.
	for range 3 {
		fetched, _, err := repository.ListMessagesByRoom(ctx, roomID, Page{Limit: 10})
		req.NoError(err)
		req.Equal([]domain.Message{first, second}, fetched)
	}
}

func Test_Messages_Pagination_Covers_All_Pages_Disjointly(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())
	ctx := context.Background()

	roomID := uuid.NewString()
	at := time.Now().UTC()
	var expected []domain.Message
	for i := range 5 {
		message := testMessage(roomID, uuid.NewString(), at.Add(time.Duration(i)*time.Second))
		req.NoError(repository.PutMessage(ctx, message))
		expected = append(expected, message)
	}

	var collected []domain.Message
	var cursor *string
	for page := 0; ; page++ {
		fetched, next, err := repository.ListMessagesByRoom(ctx, roomID, Page{Limit: 2, Cursor: cursor})
		req.NoError(err)
		collected = append(collected, fetched...)
		if next == nil {
			req.Len(fetched, 1)
			req.Equal(2, page)
			break
		}
		req.Len(fetched, 2)
		cursor = next
	}
	req.Equal(expected, collected)
}

func Test_Messages_Descending_Listing(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())
	ctx := context.Background()

	roomID := uuid.NewString()
	at := time.Now().UTC()
	oldest := testMessage(roomID, uuid.NewString(), at)
	middle := testMessage(roomID, uuid.NewString(), at.Add(1*time.Minute))
	newest := testMessage(roomID, uuid.NewString(), at.Add(2*time.Minute))
	for _, message := range []domain.Message{oldest, middle, newest} {
		req.NoError(repository.PutMessage(ctx, message))
	}

	fetched, cursor, err := repository.ListMessagesByRoom(ctx, roomID, Page{Limit: 2, Descending: true})
	req.NoError(err)
	req.Equal([]domain.Message{newest, middle}, fetched)
	req.NotNil(cursor)

	fetched, cursor, err = repository.ListMessagesByRoom(ctx, roomID, Page{Limit: 2, Cursor: cursor, Descending: true})
	req.NoError(err)
	req.Equal([]domain.Message{oldest}, fetched)
	req.Nil(cursor)
}

func Test_Messages_Scoped_To_Their_Room(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())
	ctx := context.Background()

	at := time.Now().UTC()
	mine := testMessage(uuid.NewString(), uuid.NewString(), at)
	other := testMessage(uuid.NewString(), uuid.NewString(), at)
	req.NoError(repository.PutMessage(ctx, mine))
	req.NoError(repository.PutMessage(ctx, other))

	fetched, _, err := repository.ListMessagesByRoom(ctx, mine.RoomID, Page{Limit: 10})
	req.NoError(err)
	req.Equal([]domain.Message{mine}, fetched)
}

func Test_Message_Visible_Exactly_Once_After_Write(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())
	ctx := context.Background()

	message := testMessage(uuid.NewString(), uuid.NewString(), time.Now().UTC())
	req.NoError(repository.PutMessage(ctx, message))

	fetched, _, err := repository.ListMessagesByRoom(ctx, message.RoomID, Page{Limit: 10})
	req.NoError(err)
	req.Equal([]domain.Message{message}, fetched)

	got, err := repository.GetMessage(ctx, message.ID)
	req.NoError(err)
	req.Equal(message, got)
}

func Test_Message_Duplicate_ID_Rejected(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())
	ctx := context.Background()

	message := testMessage(uuid.NewString(), uuid.NewString(), time.Now().UTC())
	req.NoError(repository.PutMessage(ctx, message))

	err := repository.PutMessage(ctx, message)
	req.ErrorIs(err, apperrors.ErrMessageConflict)
}

func Test_Message_Delete_Removes_Both_Access_Paths(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())
	ctx := context.Background()

	roomID := uuid.NewString()
	at := time.Now().UTC()
	kept := testMessage(roomID, uuid.NewString(), at)
	doomed := testMessage(roomID, uuid.NewString(), at.Add(1*time.Minute))
	req.NoError(repository.PutMessage(ctx, kept))
	req.NoError(repository.PutMessage(ctx, doomed))

	req.NoError(repository.DeleteMessage(ctx, doomed.ID))

	fetched, _, err := repository.ListMessagesByRoom(ctx, roomID, Page{Limit: 10})
	req.NoError(err)
	req.Equal([]domain.Message{kept}, fetched)

	_, err = repository.GetMessage(ctx, doomed.ID)
	req.ErrorIs(err, apperrors.ErrMessageNotFound)

	err = repository.DeleteMessage(ctx, doomed.ID)
	req.ErrorIs(err, apperrors.ErrMessageNotFound)
}

func Test_Messages_Cursor_Resumes_Past_Deleted_Message(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())
	ctx := context.Background()

	roomID := uuid.NewString()
	at := time.Now().UTC()
	first := testMessage(roomID, uuid.NewString(), at)
	second := testMessage(roomID, uuid.NewString(), at.Add(1*time.Minute))
	third := testMessage(roomID, uuid.NewString(), at.Add(2*time.Minute))
	for _, message := range []domain.Message{first, second, third} {
		req.NoError(repository.PutMessage(ctx, message))
	}

	fetched, cursor, err := repository.ListMessagesByRoom(ctx, roomID, Page{Limit: 1})
	req.NoError(err)
	req.Equal([]domain.Message{first}, fetched)
	req.NotNil(cursor)

	// The cursor's message disappears between pages; the resumed scan
	// must still return every remaining live message.
	req.NoError(repository.DeleteMessage(ctx, first.ID))

	rest, next, err := repository.ListMessagesByRoom(ctx, roomID, Page{Limit: 10, Cursor: cursor})
	req.NoError(err)
	req.Nil(next)
	req.Equal([]domain.Message{second, third}, rest)
}

func Test_Messages_Cursor_Resumes_Past_Deleted_Message_Descending(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())
	ctx := context.Background()

	roomID := uuid.NewString()
	at := time.Now().UTC()
	oldest := testMessage(roomID, uuid.NewString(), at)
	middle := testMessage(roomID, uuid.NewString(), at.Add(1*time.Minute))
	newest := testMessage(roomID, uuid.NewString(), at.Add(2*time.Minute))
	for _, message := range []domain.Message{oldest, middle, newest} {
		req.NoError(repository.PutMessage(ctx, message))
	}

	fetched, cursor, err := repository.ListMessagesByRoom(ctx, roomID, Page{Limit: 1, Descending: true})
	req.NoError(err)
	req.Equal([]domain.Message{newest}, fetched)
	req.NotNil(cursor)

	req.NoError(repository.DeleteMessage(ctx, newest.ID))

	rest, next, err := repository.ListMessagesByRoom(ctx, roomID, Page{Limit: 10, Cursor: cursor, Descending: true})
	req.NoError(err)
	req.Nil(next)
	req.Equal([]domain.Message{middle, oldest}, rest)
}

func Test_Message_Cancelled_Context_Writes_Nothing(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	message := testMessage(uuid.NewString(), uuid.NewString(), time.Now().UTC())
	req.ErrorIs(repository.PutMessage(cancelled, message), context.Canceled)

	ctx := context.Background()
	_, err := repository.GetMessage(ctx, message.ID)
	req.ErrorIs(err, apperrors.ErrMessageNotFound)

	fetched, _, err := repository.ListMessagesByRoom(ctx, message.RoomID, Page{Limit: 10})
	req.NoError(err)
	req.Empty(fetched)
}

func Test_Message_Cancelled_Context_Deletes_Nothing(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())
	ctx := context.Background()

	message := testMessage(uuid.NewString(), uuid.NewString(), time.Now().UTC())
	req.NoError(repository.PutMessage(ctx, message))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	req.ErrorIs(repository.DeleteMessage(cancelled, message.ID), context.Canceled)

	got, err := repository.GetMessage(ctx, message.ID)
	req.NoError(err)
	req.Equal(message, got)
}

func Test_Messages_Invalid_Cursor_Rejected(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())
	ctx := context.Background()

	_, _, err := repository.ListMessagesByRoom(ctx, uuid.NewString(), Page{
		Limit:  10,
		Cursor: lo.ToPtr("not base64!!"),
	})
	req.ErrorIs(err, apperrors.ErrInvalidCursor)
}
