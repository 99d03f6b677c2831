package sessionapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sufni/dashboard/internal/services/sessions/storage"
	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
	"github.com/sufni/dashboard/internal/services/web/platform/httpx"
	"github.com/sufni/dashboard/internal/services/web/platform/storeerr"
)

const (
	boardIDPathValue = "boardID"
	maxBoardBody     = 4 << 10
)

// BoardGateway stores the mapping from DAQ boards to suspension setups.
type BoardGateway interface {
	ListBoards(ctx context.Context) ([]storage.Board, error)
	PutBoard(ctx context.Context, board storage.Board) error
	DeleteBoard(ctx context.Context, id string) error
}

var _ BoardGateway = storage.BoardStore(nil)

type boardJSON struct {
	ID      string `json:"id"`
	SetupID *int64 `json:"setup_id"`
}

type boardService struct {
	gateway BoardGateway
}

func newBoardService(gateway BoardGateway) boardService {
	if gateway == nil {
		gateway = unavailableBoards{}
	}
	return boardService{gateway: gateway}
}

func (s boardService) list(ctx context.Context) ([]boardJSON, error) {
	boards, err := s.gateway.ListBoards(ctx)
	if err != nil {
		return nil, storeerr.Map(err, "board")
	}
	out := make([]boardJSON, 0, len(boards))
	for _, board := range boards {
		out = append(out, boardJSON{ID: board.ID, SetupID: board.SetupID})
	}
	return out, nil
}

func (s boardService) put(ctx context.Context, req boardJSON) (string, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return "", apperrors.E(apperrors.KindInvalidInput, "invalid data for board")
	}
	if err := s.gateway.PutBoard(ctx, storage.Board{ID: id, SetupID: req.SetupID}); err != nil {
		if errors.Is(err, storage.ErrInvalid) {
			return "", apperrors.Wrap(apperrors.KindInvalidInput, "invalid data for board", err)
		}
		return "", storeerr.Map(err, "board")
	}
	return id, nil
}

// remove deletes a board; deleting an unknown board succeeds.
func (s boardService) remove(ctx context.Context, id string) error {
	err := s.gateway.DeleteBoard(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return storeerr.Map(err, "board")
}

type unavailableBoards struct{}

func (unavailableBoards) ListBoards(context.Context) ([]storage.Board, error) {
	return nil, errBoardsUnavailable()
}

func (unavailableBoards) PutBoard(context.Context, storage.Board) error {
	return errBoardsUnavailable()
}

func (unavailableBoards) DeleteBoard(context.Context, string) error {
	return errBoardsUnavailable()
}

func errBoardsUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "board store is not configured")
}

func (h handlers) handleListBoards(w http.ResponseWriter, r *http.Request) {
	if !h.trusted(r) {
		h.writeError(w, r, errForbidden())
		return
	}
	boards, err := h.boards.list(httpx.RequestContext(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, boards)
}

func (h handlers) handlePutBoard(w http.ResponseWriter, r *http.Request) {
	if !h.trusted(r) {
		h.writeError(w, r, errForbidden())
		return
	}
	var payload boardJSON
	if err := httpx.DecodeJSON(w, r, maxBoardBody, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := h.boards.put(httpx.RequestContext(r), payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h handlers) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	if !h.resolvers.ResolveRequestViewer(r).FullAccess {
		h.writeError(w, r, errForbidden())
		return
	}
	if err := h.boards.remove(httpx.RequestContext(r), r.PathValue(boardIDPathValue)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
