package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/joseiguti/nowoptics-back/internal/hub"
	"github.com/joseiguti/nowoptics-back/internal/metrics"
	"github.com/joseiguti/nowoptics-back/internal/models"
	"github.com/joseiguti/nowoptics-back/internal/store"
)

// CreateMessageRequest represents the create message request body.
type CreateMessageRequest struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// UpdateMessageRequest represents the update message request body.
type UpdateMessageRequest struct {
	Content string `json:"content"`
}

// MessageResponse wraps a mutated message with a status line.
type MessageResponse struct {
	Message string          `json:"message"`
	Data    *models.Message `json:"data,omitempty"`
}

// CreateMessage handles POST /messages. On success the new message is
// persisted first, then broadcast to every open connection, then the
// response is written. A broadcast failure never rolls back the write.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.SenderID == "" {
		h.Error(w, http.StatusBadRequest, "sender_id is required")
		return
	}
	if req.ReceiverID == "" {
		h.Error(w, http.StatusBadRequest, "receiver_id is required")
		return
	}
	if req.Content == "" {
		h.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	msg, err := h.store.CreateMessage(r.Context(), req.SenderID, req.ReceiverID, req.Content)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create message")
		h.Error(w, http.StatusInternalServerError, "failed to create message")
		return
	}

	metrics.MessagesCreated.Inc()
	h.broadcast.Broadcast(hub.Event{Kind: hub.EventNewMessage, Data: msg})

	h.JSON(w, http.StatusCreated, MessageResponse{
		Message: "Message created successfully",
		Data:    msg,
	})
}

// ListMessages handles GET /messages. Messages come back sorted
// ascending by created_at regardless of store iteration order.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.store.ListMessages(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list messages")
		h.Error(w, http.StatusInternalServerError, "failed to list messages")
		return
	}

	h.JSON(w, http.StatusOK, messages)
}

// GetMessage handles GET /messages/{id}.
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}

	msg, err := h.store.GetMessage(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.Error(w, http.StatusNotFound, "Message not found")
			return
		}
		h.logger.Error().Err(err).Int64("id", id).Msg("failed to get message")
		h.Error(w, http.StatusInternalServerError, "failed to get message")
		return
	}

	h.JSON(w, http.StatusOK, msg)
}

// UpdateMessage handles PUT /messages/{id}. created_at is immutable;
// only content changes and updated_at is stamped.
func (h *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}

	var req UpdateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Content == "" {
		h.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	msg, err := h.store.UpdateMessage(r.Context(), id, req.Content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.Error(w, http.StatusNotFound, "Message not found")
			return
		}
		h.logger.Error().Err(err).Int64("id", id).Msg("failed to update message")
		h.Error(w, http.StatusInternalServerError, "failed to update message")
		return
	}

	metrics.MessagesUpdated.Inc()
	h.broadcast.Broadcast(hub.Event{Kind: hub.EventUpdateMessage, Data: msg})

	h.JSON(w, http.StatusOK, MessageResponse{
		Message: "Message updated successfully",
		Data:    msg,
	})
}

// DeleteMessage handles DELETE /messages/{id}. The broadcast carries
// only the deleted ID.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteMessage(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.Error(w, http.StatusNotFound, "Message not found")
			return
		}
		h.logger.Error().Err(err).Int64("id", id).Msg("failed to delete message")
		h.Error(w, http.StatusInternalServerError, "failed to delete message")
		return
	}

	metrics.MessagesDeleted.Inc()
	h.broadcast.Broadcast(hub.Event{Kind: hub.EventDeleteMessage, Data: models.MessageRef{ID: id}})

	h.JSON(w, http.StatusOK, MessageResponse{
		Message: "Message deleted successfully",
	})
}

// messageID parses the id URL parameter. A non-numeric ID can never
// name a message, so it reports not-found rather than a validation
// error.
func (h *Handler) messageID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.Error(w, http.StatusNotFound, "Message not found")
		return 0, false
	}
	return id, true
}
