//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_room_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"messenger/domain"
	apperrors "messenger/errors"
)

const roomKeyPrefix = "room:"

type IRoomRepository interface {
	PutRoom(ctx context.Context, room domain.Room) error
	GetRoom(ctx context.Context, id string) (domain.Room, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
}

type RoomRepository struct {
	db *badger.DB
}

func NewRoomRepository(db *badger.DB) IRoomRepository {
	return &RoomRepository{db: db}
}

type storedRoom struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// PutRoom inserts a room under "room:{id}". The existence check runs inside
// the update transaction, so a duplicate id is rejected even under
// concurrent writers.
func (r *RoomRepository) PutRoom(ctx context.Context, room domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(fromRoom(room))
	if err != nil {
		return err
	}
	key := []byte(roomKeyPrefix + room.ID)
	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return apperrors.ErrRoomConflict
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, value)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrRoomConflict) {
			return err
		}
		return fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return nil
}

func (r *RoomRepository) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	var stored storedRoom
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(roomKeyPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.Room{}, apperrors.ErrRoomNotFound
		}
		return domain.Room{}, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return toRoom(stored), nil
}

// ListRooms scans the "room:" prefix. Rooms come back in key order, which
// is not a contract anyone should rely on.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(roomKeyPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var stored storedRoom
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &stored)
			}); err != nil {
				return err
			}
			rooms = append(rooms, toRoom(stored))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return rooms, nil
}

func fromRoom(room domain.Room) storedRoom {
	return storedRoom{
		ID:        room.ID,
		Name:      room.Name,
		CreatedAt: room.CreatedAt.UnixNano(),
	}
}

func toRoom(stored storedRoom) domain.Room {
	return domain.Room{
		ID:        stored.ID,
		Name:      stored.Name,
		CreatedAt: time.Unix(0, stored.CreatedAt).UTC(),
	}
}
