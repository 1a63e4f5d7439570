package handler

import (
	"net/http"

	"github.com/osse101/SlotHouse_Go/internal/logger"
	"github.com/osse101/SlotHouse_Go/internal/slots"
)

// CreateAccountRequest represents the request to open a wallet
type CreateAccountRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,username"`
}

// BalanceResponse is the current wallet balance
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

// HandleCreateAccount opens a wallet with the configured starting balance
// @Summary Open an account
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users [post]
func HandleCreateAccount(svc slots.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create account"); err != nil {
			return
		}

		account, err := svc.OpenAccount(r.Context(), req.Username)
		if err != nil {
			respondServiceError(w, r, "Create account", err)
			return
		}

		logger.FromContext(r.Context()).Info("Account created", "user_id", account.ID, "username", account.Username)
		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgAccountCreated, Data: account})
	}
}

// HandleGetBalance returns the authenticated user's balance
// @Summary Get balance
// @Tags balance
// @Produce json
// @Param X-User-ID header string true "Authenticated user"
// @Success 200 {object} BalanceResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/balance [get]
func HandleGetBalance(svc slots.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		balance, err := svc.Balance(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}
		respondJSON(w, http.StatusOK, BalanceResponse{UserID: userID, Balance: balance})
	}
}

// HandleGetTransactions returns the ledger newest first
// @Summary List transactions
// @Tags balance
// @Produce json
// @Param X-User-ID header string true "Authenticated user"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Entries to skip"
// @Success 200 {object} domain.Page[domain.TransactionEntry]
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/balance/transactions [get]
func HandleGetTransactions(svc slots.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		limit, offset, ok := getPagination(w, r)
		if !ok {
			return
		}

		page, err := svc.Transactions(r.Context(), userID, limit, offset)
		if err != nil {
			respondServiceError(w, r, "List transactions", err)
			return
		}
		respondJSON(w, http.StatusOK, page)
	}
}

// HandleGetHistory returns play history newest first
// @Summary List game history
// @Tags balance
// @Produce json
// @Param X-User-ID header string true "Authenticated user"
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Entries to skip"
// @Success 200 {object} domain.Page[domain.GameHistoryEntry]
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/balance/history [get]
func HandleGetHistory(svc slots.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}
		limit, offset, ok := getPagination(w, r)
		if !ok {
			return
		}

		page, err := svc.GameHistory(r.Context(), userID, limit, offset)
		if err != nil {
			respondServiceError(w, r, "List game history", err)
			return
		}
		respondJSON(w, http.StatusOK, page)
	}
}
