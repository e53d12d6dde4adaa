package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/Utkarsh4517/fast-chat/internal/chat"
	"github.com/Utkarsh4517/fast-chat/internal/store"
)

type RoomHandler struct {
	Store    store.Store
	Log      *slog.Logger
	Registry *chat.Registry
	Gate     chat.CredentialGate

	Upgrader websocket.Upgrader
}

type createRoomRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=128"`
	CreatorID int    `json:"creator_id" validate:"required"`
}

// CreateRoom handles POST /rooms/.
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.Store.CreateRoom(r.Context(), req.Name, req.CreatorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "creator not found")
			return
		}
		h.Log.Error("create room", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"room_id": room.ID})
}

// Room handles GET /rooms/{id}. A plain GET returns the room's details; a
// websocket upgrade on the same path joins the room, matching the original
// API where both lived on one route.
func (h *RoomHandler) Room(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	if websocket.IsWebSocketUpgrade(r) {
		h.join(w, r, id)
		return
	}

	room, err := h.Store.GetRoom(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		h.Log.Error("get room", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"room_id": room.ID,
		"name":    room.Name,
		"creator": room.CreatorName,
	})
}

// join upgrades the connection and runs the room session until disconnect.
// Unknown rooms are rejected before the upgrade so the client gets a proper
// 404 instead of a silently empty room.
func (h *RoomHandler) join(w http.ResponseWriter, r *http.Request, roomID int) {
	if _, err := h.Store.GetRoom(r.Context(), roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		h.Log.Error("join room", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	ws, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Error("ws upgrade", "err", err)
		return
	}

	conn := chat.NewConn(ws)
	session := chat.NewSession(h.Log, h.Store, h.Gate, h.Registry, roomID, conn)

	// The session runs on this handler goroutine until the client
	// disconnects; the request context stays live for that whole span.
	session.Run(r.Context())
}
