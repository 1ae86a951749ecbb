//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"

	"messenger/domain"
	apperrors "messenger/errors"
)

const (
	messageKeyPrefix = "msg:"
	roomIndexPrefix  = "roomidx:"
)

// maxPaddedNanos sorts after every zero-padded timestamp, so seeking to it
// lands a reverse iterator on the newest entry of a room.
var maxPaddedNanos = []byte("9999999999999999999")

// Page bounds a single fetch of a room's history. Cursor is the opaque
// token returned by the previous page, nil for the first page.
type Page struct {
	Limit      int
	Cursor     *string
	Descending bool
}

type IMessageRepository interface {
	PutMessage(ctx context.Context, message domain.Message) error
	GetMessage(ctx context.Context, id string) (domain.Message, error)
	DeleteMessage(ctx context.Context, id string) error
	ListMessagesByRoom(ctx context.Context, roomID string, page Page) ([]domain.Message, *string, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) IMessageRepository {
	return &MessageRepository{db: db, log: log}
}

type storedMessage struct {
	ID       string `json:"id"`
	RoomID   string `json:"room_id"`
	AuthorID string `json:"author_id"`
	Body     string `json:"body"`
	At       int64  `json:"at"`
}

// PutMessage persists a message under two keys inside a single transaction:
//  1. "msg:{id}" holds the record itself and serves point lookups.
//  2. "roomidx:{room_id}:{timestamp_padded}:{id}" is the room index. The
//     19-digit zero padding makes byte order equal chronological order, and
//     the trailing id disambiguates two messages written in the same
//     nanosecond.
//
// Both keys commit together or not at all, so a message is never visible
// through one access path and missing from the other.
func (m *MessageRepository) PutMessage(ctx context.Context, message domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(fromMessage(message))
	if err != nil {
		return err
	}
	primary := []byte(messageKeyPrefix + message.ID)
	index := indexKey(message.RoomID, message.CreatedAt, message.ID)
	err = m.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(primary); err == nil {
			return apperrors.ErrMessageConflict
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set(primary, value); err != nil {
			return err
		}
		return txn.Set(index, nil)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrMessageConflict) {
			return err
		}
		return fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return nil
}

func (m *MessageRepository) GetMessage(ctx context.Context, id string) (domain.Message, error) {
	var stored storedMessage
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(messageKeyPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.Message{}, apperrors.ErrMessageNotFound
		}
		return domain.Message{}, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return toMessage(stored), nil
}

// DeleteMessage removes the record and its index entry in one transaction.
// The record is read first to reconstruct the index key from its room and
// timestamp.
func (m *MessageRepository) DeleteMessage(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	primary := []byte(messageKeyPrefix + id)
	err := m.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(primary)
		if err != nil {
			return err
		}
		var stored storedMessage
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		}); err != nil {
			return err
		}
		if err := txn.Delete(primary); err != nil {
			return err
		}
		message := toMessage(stored)
		return txn.Delete(indexKey(message.RoomID, message.CreatedAt, message.ID))
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return apperrors.ErrMessageNotFound
		}
		return fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return nil
}

// ListMessagesByRoom walks the room index within a single read transaction.
// Ascending scans start at the room prefix; descending scans seek past the
// newest possible entry and walk backwards (the pattern used for
// newest-first history). The returned cursor encodes the index-key suffix
// of the last message, and a resumed scan skips that entry, so consecutive
// pages are disjoint. A non-nil cursor is returned only when at least one
// more entry exists.
func (m *MessageRepository) ListMessagesByRoom(ctx context.Context, roomID string, page Page) ([]domain.Message, *string, error) {
	prefixStr := roomIndexPrefix + roomID + ":"
	prefix := []byte(prefixStr)
	var messages []domain.Message
	var next *string
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = page.Descending
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := prefix
		if page.Descending {
			seekKey = append([]byte(prefixStr), maxPaddedNanos...)
		}
		if page.Cursor != nil {
			suffix, err := decodeCursor(*page.Cursor)
			if err != nil {
				return err
			}
			seekKey = append([]byte(prefixStr), suffix...)
		}
		it.Seek(seekKey)

		// The cursor points at the last entry of the previous page. Skip
		// it only when it still exists: if it was deleted between pages,
		// the seek already landed on the next live entry, which must not
		// be discarded.
		if page.Cursor != nil && it.ValidForPrefix(prefix) &&
			bytes.Equal(it.Item().Key(), seekKey) {
			it.Next()
		}

		var lastSuffix string
		for ; it.ValidForPrefix(prefix); it.Next() {
			if page.Limit > 0 && len(messages) == page.Limit {
				m.log.Debug("page limit reached", "room_id", roomID, "limit", page.Limit)
				next = lo.ToPtr(encodeCursor(lastSuffix))
				return nil
			}
			lastSuffix = string(it.Item().Key()[len(prefix):])
			item, err := txn.Get([]byte(messageKeyPrefix + messageIDFromSuffix(lastSuffix)))
			if err != nil {
				return err
			}
			var stored storedMessage
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &stored)
			}); err != nil {
				return err
			}
			messages = append(messages, toMessage(stored))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCursor) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return messages, next, nil
}

func indexKey(roomID string, at time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%s%s:%019d:%s", roomIndexPrefix, roomID, at.UnixNano(), id))
}

// messageIDFromSuffix strips the "{timestamp_padded}:" prefix of an index
// key suffix, leaving the message id.
func messageIDFromSuffix(suffix string) string {
	if i := strings.IndexByte(suffix, ':'); i >= 0 {
		return suffix[i+1:]
	}
	return suffix
}

func encodeCursor(suffix string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(suffix))
}

func decodeCursor(cursor string) ([]byte, error) {
	suffix, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCursor, err)
	}
	return suffix, nil
}

func fromMessage(message domain.Message) storedMessage {
	return storedMessage{
		ID:       message.ID,
		RoomID:   message.RoomID,
		AuthorID: message.AuthorID,
		Body:     message.Body,
		At:       message.CreatedAt.UnixNano(),
	}
}

func toMessage(stored storedMessage) domain.Message {
	return domain.Message{
		ID:        stored.ID,
		RoomID:    stored.RoomID,
		AuthorID:  stored.AuthorID,
		Body:      stored.Body,
		CreatedAt: time.Unix(0, stored.At).UTC(),
	}
}
