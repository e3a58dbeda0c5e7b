package rates

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/dto"
	"github.com/GlebRadaev/gtonledger/internal/handlers/respond"
	"github.com/GlebRadaev/gtonledger/internal/rates"
	"github.com/GlebRadaev/gtonledger/pkg/utils"
)

//go:generate mockgen -source=rates.go -destination=mock_rates.go -package=rates

type Service interface {
	Rates() []rates.Quote
	Convert(ctx context.Context, amount decimal.Decimal, currency string) (*domain.Conversion, error)
	ConvertFromGTON(ctx context.Context, gton decimal.Decimal, currency string) (*domain.Conversion, error)
}

type RatesHandler struct {
	ratesService Service
}

func New(ratesService Service) *RatesHandler {
	return &RatesHandler{
		ratesService: ratesService,
	}
}

// List godoc
//
//	@Summary		Cached exchange rates
//	@Description	Every cached rate with its update time. Rates older than the configured maximum age are marked stale.
//	@Tags			Rates
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	dto.RateDTO
//	@Router			/api/rates [get]
func (h *RatesHandler) List(w http.ResponseWriter, _ *http.Request) {
	quotes := h.ratesService.Rates()
	resp := make([]dto.RateDTO, 0, len(quotes))
	for _, q := range quotes {
		resp = append(resp, dto.RateDTO{
			Base:      q.Base,
			Quote:     q.Quote,
			Rate:      q.Rate,
			Source:    q.Source,
			UpdatedAt: q.UpdatedAt,
			Stale:     q.Stale,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// Convert godoc
//
//	@Summary		Convert an amount to or from GTON
//	@Description	direction to_gton (default) reads amount in currency; from_gton reads amount in GTON.
//	@Tags			Rates
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ConvertRequestDTO	true	"Amount and currency"
//	@Success		200		{object}	dto.ConversionDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		422		{object}	utils.Response	"Unsupported currency"
//	@Failure		503		{object}	utils.Response	"Exchange rates unavailable"
//	@Router			/api/rates/convert [post]
func (h *RatesHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req dto.ConvertRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}
	convert := h.ratesService.Convert
	if req.Direction == dto.DirectionFromGTON {
		convert = h.ratesService.ConvertFromGTON
	} else {
		req.Direction = dto.DirectionToGTON
	}
	conv, err := convert(r.Context(), req.Amount, req.Currency)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ConversionDTO{
		Direction: req.Direction,
		Currency:  conv.Currency,
		Amount:    conv.Amount,
		GTON:      conv.GTON,
		Rate:      conv.Rate,
		AsOf:      conv.AsOf,
	})
}
