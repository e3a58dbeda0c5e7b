package audit

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/dto"
	"github.com/GlebRadaev/gtonledger/internal/handlers/respond"
	"github.com/GlebRadaev/gtonledger/internal/service/auditservice"
	"github.com/GlebRadaev/gtonledger/pkg/utils"
)

//go:generate mockgen -source=audit.go -destination=mock_audit.go -package=audit

type Service interface {
	Transactions(ctx context.Context, p auditservice.Page) ([]domain.Transaction, error)
	Commissions(ctx context.Context, p auditservice.Page) ([]domain.Commission, error)
	Activations(ctx context.Context, p auditservice.Page) ([]domain.PromoActivation, error)
	Claims(ctx context.Context, p auditservice.Page) ([]domain.DailyBonusClaim, error)
}

type AuditHandler struct {
	auditService Service
}

func New(auditService Service) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// Feed godoc
//
//	@Summary		Audit feed
//	@Description	Append-only records in id order. Pass next_after_id back as after_id to continue.
//	@Tags			Audit
//	@Security		BearerAuth
//	@Produce		json
//	@Param			feed		path		string	true	"Feed"	Enums(transactions, commissions, activations, claims)
//	@Param			after_id	query		int		false	"Last id already seen"
//	@Param			limit		query		int		false	"Page size"
//	@Success		200			{object}	dto.Feed[dto.TransactionDTO]
//	@Failure		400			{object}	utils.Response	"Invalid query"
//	@Failure		404			{object}	utils.Response	"Unknown feed"
//	@Router			/api/audit/{feed} [get]
func (h *AuditHandler) Feed(w http.ResponseWriter, r *http.Request) {
	page, err := pageFrom(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	ctx := r.Context()
	switch chi.URLParam(r, "feed") {
	case "transactions":
		items, err := h.auditService.Transactions(ctx, page)
		writeFeed(w, err, page, dto.NewTransactionDTO, func(t dto.TransactionDTO) int64 { return t.ID }, items)
	case "commissions":
		items, err := h.auditService.Commissions(ctx, page)
		writeFeed(w, err, page, dto.NewCommissionDTO, func(c dto.CommissionDTO) int64 { return c.ID }, items)
	case "activations":
		items, err := h.auditService.Activations(ctx, page)
		writeFeed(w, err, page, dto.NewActivationDTO, func(a dto.ActivationDTO) int64 { return a.ID }, items)
	case "claims":
		items, err := h.auditService.Claims(ctx, page)
		writeFeed(w, err, page, dto.NewClaimDTO, func(c dto.ClaimDTO) int64 { return c.ID }, items)
	default:
		utils.RespondWithError(w, http.StatusNotFound, "unknown feed")
	}
}

func pageFrom(r *http.Request) (auditservice.Page, error) {
	var page auditservice.Page
	if raw := r.URL.Query().Get("after_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return page, utils.ErrInvalidBody
		}
		page.AfterID = id
	}
	limit, err := respond.QueryInt(r, "limit")
	if err != nil {
		return page, err
	}
	page.Limit = limit
	return page, nil
}

// writeFeed maps one page and sets the cursor to the last id, or keeps the
// caller's cursor on an empty page.
func writeFeed[M, D any](w http.ResponseWriter, err error, page auditservice.Page, mapFn func(M) D, id func(D) int64, items []M) {
	if err != nil {
		respond.Error(w, err)
		return
	}
	feed := dto.Feed[D]{Items: make([]D, 0, len(items)), NextAfterID: page.AfterID}
	for _, item := range items {
		feed.Items = append(feed.Items, mapFn(item))
	}
	if n := len(feed.Items); n > 0 {
		feed.NextAfterID = id(feed.Items[n-1])
	}
	utils.RespondWithJSON(w, http.StatusOK, feed)
}
