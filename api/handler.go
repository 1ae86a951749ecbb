// Package api is the HTTP front of the messenger contract. Handlers only
// decode requests, dispatch through the contract, and encode results; all
// policy lives in the resolver layer.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"messenger/auth"
	"messenger/contract"
	"messenger/domain"
	apperrors "messenger/errors"
)

type MessengerHandler struct {
	resolver contract.Resolver
	log      *slog.Logger
}

func NewMessengerHandler(resolver contract.Resolver, log *slog.Logger) *MessengerHandler {
	return &MessengerHandler{resolver: resolver, log: log}
}

type roomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type messagePageResponse struct {
	Messages []messageResponse `json:"messages"`
	Cursor   *string           `json:"cursor,omitempty"`
}

func (h *MessengerHandler) ListRooms(c *gin.Context) {
	res, err := h.dispatch(c, contract.Operation{Kind: contract.KindListRooms})
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, lo.Map(res.Rooms, func(room domain.Room, _ int) roomResponse {
		return toRoomResponse(room)
	}))
}

func (h *MessengerHandler) CreateRoom(c *gin.Context) {
	var req contract.CreateRoomRequest
	if !h.bind(c, &req) {
		return
	}
	res, err := h.dispatch(c, contract.Operation{Kind: contract.KindCreateRoom, CreateRoom: &req})
	if err != nil {
		return
	}
	c.JSON(http.StatusCreated, toRoomResponse(*res.Room))
}

func (h *MessengerHandler) ListMessagesForRoom(c *gin.Context) {
	req := contract.ListMessagesRequest{RoomID: c.Param("id")}
	var query listMessagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.renderError(c, apperrors.ErrValidation)
		return
	}
	req.Limit = query.Limit
	req.Descending = query.Descending
	if query.Cursor != "" {
		req.Cursor = lo.ToPtr(query.Cursor)
	}
	res, err := h.dispatch(c, contract.Operation{Kind: contract.KindListMessagesForRoom, ListMessages: &req})
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, messagePageResponse{
		Messages: lo.Map(res.Page.Messages, func(message domain.Message, _ int) messageResponse {
			return toMessageResponse(message)
		}),
		Cursor: res.Page.Cursor,
	})
}

func (h *MessengerHandler) CreateMessage(c *gin.Context) {
	var body struct {
		Body string `json:"body"`
	}
	if !h.bind(c, &body) {
		return
	}
	req := contract.CreateMessageRequest{RoomID: c.Param("id"), Body: body.Body}
	res, err := h.dispatch(c, contract.Operation{Kind: contract.KindCreateMessage, CreateMessage: &req})
	if err != nil {
		return
	}
	c.JSON(http.StatusCreated, toMessageResponse(*res.Message))
}

func (h *MessengerHandler) DeleteMessage(c *gin.Context) {
	req := contract.DeleteMessageRequest{ID: c.Param("id")}
	res, err := h.dispatch(c, contract.Operation{Kind: contract.KindDeleteMessage, DeleteMessage: &req})
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": res.Deleted.ID})
}

type listMessagesQuery struct {
	Limit      int    `form:"limit"`
	Cursor     string `form:"cursor"`
	Descending bool   `form:"descending"`
}

// dispatch runs the operation and renders any failure; callers stop on a
// non-nil error.
func (h *MessengerHandler) dispatch(c *gin.Context, op contract.Operation) (contract.Result, error) {
	res, err := contract.Dispatch(c.Request.Context(), auth.IdentityFrom(c), h.resolver, op)
	if err != nil {
		h.renderError(c, err)
		return contract.Result{}, err
	}
	return res, nil
}

func (h *MessengerHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// renderError maps the error kinds of the resolver layer to HTTP status
// codes. Unknown errors are logged and reported as a plain 500 to avoid
// leaking internals.
func (h *MessengerHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRoomNotFound), errors.Is(err, apperrors.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRoomConflict), errors.Is(err, apperrors.ErrMessageConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidCursor):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.log.Error("unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func toRoomResponse(room domain.Room) roomResponse {
	return roomResponse{ID: room.ID, Name: room.Name, CreatedAt: room.CreatedAt}
}

func toMessageResponse(message domain.Message) messageResponse {
	return messageResponse{
		ID:        message.ID,
		RoomID:    message.RoomID,
		AuthorID:  message.AuthorID,
		Body:      message.Body,
		CreatedAt: message.CreatedAt,
	}
}
