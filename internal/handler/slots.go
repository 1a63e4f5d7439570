package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/SlotHouse_Go/internal/domain"
	"github.com/osse101/SlotHouse_Go/internal/logger"
	"github.com/osse101/SlotHouse_Go/internal/slots"
)

// SlotsHandler handles game catalog and play requests
type SlotsHandler struct {
	service slots.Service
}

// NewSlotsHandler creates a new slots handler
func NewSlotsHandler(service slots.Service) *SlotsHandler {
	return &SlotsHandler{service: service}
}

// PlayRequest represents a request to settle one spin.
// Bet bounds are game specific and checked by the service.
type PlayRequest struct {
	Game      string `json:"game" validate:"required,max=64,gameid"`
	BetAmount int64  `json:"bet_amount"`
}

// GamesResponse lists the catalog
type GamesResponse struct {
	Games []domain.GameConfig `json:"games"`
}

// HandlePlay settles a wager for the authenticated user
// @Summary Play a spin
// @Description Debits the bet, spins the reels and credits any win in one transaction.
// @Description Repeating a request with the same Idempotency-Key returns the first settlement.
// @Tags games
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Authenticated user"
// @Param Idempotency-Key header string false "Client supplied retry key"
// @Param request body PlayRequest true "Wager"
// @Success 200 {object} domain.SettlementRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/games/play [post]
func (h *SlotsHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	key, ok := idempotencyKey(w, r)
	if !ok {
		return
	}

	var req PlayRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Play"); err != nil {
		return
	}

	record, err := h.service.Settle(r.Context(), domain.Wager{
		UserID:         userID,
		GameID:         domain.GameID(req.Game),
		BetAmount:      req.BetAmount,
		IdempotencyKey: key,
	})
	if err != nil {
		respondServiceError(w, r, "Play", err)
		return
	}

	logger.FromContext(r.Context()).Debug("Play settled",
		"settlement_id", record.ID,
		"game", record.Game,
		"net", record.NetChange)
	respondJSON(w, http.StatusOK, record)
}

// HandleListGames lists every game in catalog order
// @Summary List games
// @Tags games
// @Produce json
// @Success 200 {object} GamesResponse
// @Security ApiKeyAuth
// @Router /api/v1/games [get]
func (h *SlotsHandler) HandleListGames(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, GamesResponse{Games: h.service.Games()})
}

// HandleGetGame returns one game configuration
// @Summary Get game configuration
// @Tags games
// @Produce json
// @Param gameID path string true "Game ID (case-insensitive)"
// @Success 200 {object} domain.GameConfig
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/games/{gameID} [get]
func (h *SlotsHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	if id == "" {
		respondError(w, http.StatusBadRequest, ErrMsgMissingGameID)
		return
	}

	cfg, err := h.service.GameConfig(id)
	if err != nil {
		respondServiceError(w, r, "Get game", err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}
