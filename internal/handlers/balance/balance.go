package balance

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/dto"
	"github.com/GlebRadaev/gtonledger/internal/handlers/respond"
	"github.com/GlebRadaev/gtonledger/internal/service/balanceservice"
	"github.com/GlebRadaev/gtonledger/pkg/auth"
	"github.com/GlebRadaev/gtonledger/pkg/utils"
)

//go:generate mockgen -source=balance.go -destination=mock_balance.go -package=balance

type Service interface {
	GetBalance(ctx context.Context, userID int64, kind domain.WalletKind) (decimal.Decimal, error)
	GetBalances(ctx context.Context, userID int64) ([]domain.Wallet, error)
	Deduct(ctx context.Context, op balanceservice.Operation) (*balanceservice.Result, error)
	Credit(ctx context.Context, op balanceservice.Operation) (*balanceservice.Result, error)
	Deposit(ctx context.Context, op balanceservice.Operation, amount decimal.Decimal, currency string) (*balanceservice.Result, error)
	Transfer(ctx context.Context, userID int64, from domain.WalletKind, to domain.WalletKind, amount decimal.Decimal, serviceID *string) ([]domain.Transaction, error)
	Freeze(ctx context.Context, userID int64, kind domain.WalletKind, amount decimal.Decimal) (*domain.Wallet, error)
	Unfreeze(ctx context.Context, userID int64, kind domain.WalletKind, amount decimal.Decimal) (*domain.Wallet, error)
	SetDailyLimit(ctx context.Context, userID int64, kind domain.WalletKind, limit decimal.NullDecimal) (*domain.Wallet, error)
	History(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error)
	Reconcile(ctx context.Context, userID int64, kind domain.WalletKind) (*balanceservice.Reconciliation, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

func operationResponse(res *balanceservice.Result) dto.OperationResponseDTO {
	return dto.OperationResponseDTO{
		Transaction: dto.NewTransactionDTO(res.Transaction),
		Balance:     res.Balance,
	}
}

// GetBalance godoc
//
//	@Summary		Get spendable balance
//	@Description	Spendable balance (balance minus frozen) of one wallet. Expired bonus funds count as zero.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userID	path		int		true	"User ID"
//	@Param			kind	query		string	false	"Wallet kind"	Enums(main, bonus)
//	@Success		200		{object}	dto.BalanceResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		401		{object}	utils.Response	"Unauthorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/users/{userID}/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	kind := domain.WalletKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = domain.WalletMain
	}

	balance, err := h.balanceService.GetBalance(r.Context(), userID, kind)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		UserID:     userID,
		WalletKind: kind,
		Balance:    balance,
	})
}

// GetBalances godoc
//
//	@Summary		List wallets
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{array}		dto.WalletDTO
//	@Failure		401		{object}	utils.Response	"Unauthorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/users/{userID}/balances [get]
func (h *BalanceHandler) GetBalances(w http.ResponseWriter, r *http.Request) {
	userID, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	wallets, err := h.balanceService.GetBalances(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	response := make([]dto.WalletDTO, 0, len(wallets))
	for _, wallet := range wallets {
		response = append(response, dto.NewWalletDTO(wallet))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Deduct godoc
//
//	@Summary		Debit a wallet
//	@Description	Debits the wallet and pays referral commissions to the user's ancestors.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int						true	"User ID"
//	@Param			request	body		dto.DeductRequestDTO	true	"Debit"
//	@Success		200		{object}	dto.OperationResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		404		{object}	utils.Response	"Wallet not found"
//	@Failure		429		{object}	utils.Response	"Daily limit exceeded"
//	@Failure		503		{object}	utils.Response	"Store busy"
//	@Router			/api/users/{userID}/deduct [post]
func (h *BalanceHandler) Deduct(w http.ResponseWriter, r *http.Request) {
	userID, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	var req dto.DeductRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	res, err := h.balanceService.Deduct(r.Context(), balanceservice.Operation{
		UserID:      userID,
		Amount:      req.Amount,
		WalletKind:  req.WalletKind,
		Action:      req.Action,
		Reason:      req.Reason,
		ServiceID:   auth.ServiceID(r.Context()),
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, operationResponse(res))
}

// Credit godoc
//
//	@Summary		Credit a wallet
//	@Description	Credits the wallet, creating it when missing. Bonus credits may carry an expiry.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int						true	"User ID"
//	@Param			request	body		dto.CreditRequestDTO	true	"Credit"
//	@Success		200		{object}	dto.OperationResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		503		{object}	utils.Response	"Store busy"
//	@Router			/api/users/{userID}/credit [post]
func (h *BalanceHandler) Credit(w http.ResponseWriter, r *http.Request) {
	userID, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	var req dto.CreditRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	res, err := h.balanceService.Credit(r.Context(), balanceservice.Operation{
		UserID:      userID,
		Amount:      req.Amount,
		WalletKind:  req.WalletKind,
		Source:      req.Source,
		Action:      req.Action,
		Reason:      req.Reason,
		ServiceID:   auth.ServiceID(r.Context()),
		ReferenceID: req.ReferenceID,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, operationResponse(res))
}

// Deposit godoc
//
//	@Summary		Deposit an external payment
//	@Description	Converts the payment to GTON through cached exchange rates and credits the main wallet.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int						true	"User ID"
//	@Param			request	body		dto.DepositRequestDTO	true	"Payment"
//	@Success		200		{object}	dto.OperationResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		422		{object}	utils.Response	"Unsupported currency"
//	@Failure		503		{object}	utils.Response	"Exchange rates unavailable"
//	@Router			/api/users/{userID}/deposit [post]
func (h *BalanceHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	var req dto.DepositRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	res, err := h.balanceService.Deposit(r.Context(), balanceservice.Operation{
		UserID:      userID,
		ServiceID:   auth.ServiceID(r.Context()),
		ReferenceID: req.Reference,
		Reason:      "deposit " + req.Currency,
	}, req.Amount, req.Currency)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, operationResponse(res))
}

// Transfer godoc
//
//	@Summary		Move funds between wallets
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int						true	"User ID"
//	@Param			request	body		dto.TransferRequestDTO	true	"Transfer"
//	@Success		200		{array}		dto.TransactionDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		404		{object}	utils.Response	"Wallet not found"
//	@Router			/api/users/{userID}/transfer [post]
func (h *BalanceHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	var req dto.TransferRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	txs, err := h.balanceService.Transfer(r.Context(), userID, req.From, req.To, req.Amount, auth.ServiceID(r.Context()))
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewTransactionDTOs(txs))
}

// Freeze godoc
//
//	@Summary		Reserve funds
//	@Description	Moves part of the spendable balance into the frozen amount. No transaction is recorded.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int						true	"User ID"
//	@Param			request	body		dto.FreezeRequestDTO	true	"Amount"
//	@Success		200		{object}	dto.WalletDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Router			/api/users/{userID}/freeze [post]
func (h *BalanceHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	h.adjustFrozen(w, r, h.balanceService.Freeze)
}

// Unfreeze godoc
//
//	@Summary		Release reserved funds
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int						true	"User ID"
//	@Param			request	body		dto.FreezeRequestDTO	true	"Amount"
//	@Success		200		{object}	dto.WalletDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		402		{object}	utils.Response	"Not enough frozen funds"
//	@Router			/api/users/{userID}/unfreeze [post]
func (h *BalanceHandler) Unfreeze(w http.ResponseWriter, r *http.Request) {
	h.adjustFrozen(w, r, h.balanceService.Unfreeze)
}

type frozenFn func(ctx context.Context, userID int64, kind domain.WalletKind, amount decimal.Decimal) (*domain.Wallet, error)

func (h *BalanceHandler) adjustFrozen(w http.ResponseWriter, r *http.Request, fn frozenFn) {
	userID, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	var req dto.FreezeRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}
	wallet, err := fn(r.Context(), userID, req.WalletKind, req.Amount)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWalletDTO(*wallet))
}

// SetDailyLimit godoc
//
//	@Summary		Set or clear the daily debit limit
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int							true	"User ID"
//	@Param			request	body		dto.DailyLimitRequestDTO	true	"Limit, null clears it"
//	@Success		200		{object}	dto.WalletDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		404		{object}	utils.Response	"Wallet not found"
//	@Router			/api/users/{userID}/daily-limit [put]
func (h *BalanceHandler) SetDailyLimit(w http.ResponseWriter, r *http.Request) {
	userID, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	var req dto.DailyLimitRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}
	wallet, err := h.balanceService.SetDailyLimit(r.Context(), userID, req.WalletKind, req.Limit)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWalletDTO(*wallet))
}

// GetTransactions godoc
//
//	@Summary		Transaction history
//	@Description	Newest first.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userID		path		int		true	"User ID"
//	@Param			direction	query		string	false	"Direction"	Enums(credit, debit)
//	@Param			source		query		string	false	"Source"
//	@Param			wallet_kind	query		string	false	"Wallet kind"	Enums(main, bonus)
//	@Param			limit		query		int		false	"Page size"
//	@Param			offset		query		int		false	"Offset"
//	@Success		200			{array}		dto.TransactionDTO
//	@Failure		400			{object}	utils.Response	"Invalid request"
//	@Router			/api/users/{userID}/transactions [get]
func (h *BalanceHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	limit, err := respond.QueryInt(r, "limit")
	if err != nil {
		respond.Error(w, err)
		return
	}
	offset, err := respond.QueryInt(r, "offset")
	if err != nil {
		respond.Error(w, err)
		return
	}
	q := r.URL.Query()
	direction := domain.Direction(q.Get("direction"))
	if direction != "" && direction != domain.Credit && direction != domain.Debit {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid direction")
		return
	}

	txs, err := h.balanceService.History(r.Context(), domain.TransactionFilter{
		UserID:     userID,
		WalletKind: domain.WalletKind(q.Get("wallet_kind")),
		Direction:  direction,
		Source:     q.Get("source"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewTransactionDTOs(txs))
}

// Reconcile godoc
//
//	@Summary		Replay a wallet's ledger
//	@Description	Replays completed transactions from zero and compares the result with the stored balance.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userID	path		int		true	"User ID"
//	@Param			kind	query		string	false	"Wallet kind"	Enums(main, bonus)
//	@Success		200		{object}	balanceservice.Reconciliation
//	@Failure		404		{object}	utils.Response	"Wallet not found"
//	@Router			/api/users/{userID}/reconcile [get]
func (h *BalanceHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	userID, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	rep, err := h.balanceService.Reconcile(r.Context(), userID, domain.WalletKind(r.URL.Query().Get("kind")))
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rep)
}
