package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"loan-origination/internal/usecase/dto"
	"loan-origination/internal/usecase/loan"
)

type LoanHandler struct {
	uc  *loan.Usecase
	log logrus.FieldLogger
}

func NewLoanHandler(uc *loan.Usecase, log logrus.FieldLogger) *LoanHandler {
	return &LoanHandler{uc: uc, log: log}
}

type applyReq struct {
	AmountRequested decimal.Decimal `json:"amount_requested" validate:"dec2,decgte=10000,declte=50000000"`
	TenureMonths    int             `json:"tenure_months" validate:"gte=6,lte=360"`
	LoanType        string          `json:"loan_type" validate:"omitempty,loantype"`
	Purpose         string          `json:"purpose" validate:"max=500"`
}

type quoteReq struct {
	AmountRequested decimal.Decimal `json:"amount_requested" validate:"dec2,decgte=10000,declte=50000000"`
	TenureMonths    int             `json:"tenure_months" validate:"gte=6,lte=360"`
}

type idReq struct {
	ID string `param:"id" validate:"hex32"`
}

// listReq is shared by every paginated listing.
type listReq struct {
	Status    string `query:"status" validate:"omitempty,loanstatus"`
	MinAmount string `query:"minAmount" validate:"omitempty,decimal"`
	MaxAmount string `query:"maxAmount" validate:"omitempty,decimal"`
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	SortBy    string `query:"sortBy"`
	Order     string `query:"order"`
}

func (r listReq) query() dto.ListQuery {
	return dto.ListQuery{
		Status:    r.Status,
		MinAmount: nullDecimal(r.MinAmount),
		MaxAmount: nullDecimal(r.MaxAmount),
		Page:      r.Page,
		Limit:     r.Limit,
		SortBy:    r.SortBy,
		Order:     r.Order,
	}
}

func nullDecimal(s string) decimal.NullDecimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.Apply(c.Request().Context(), callerOf(c), loan.ApplyInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *LoanHandler) Quote(c echo.Context) error {
	var req quoteReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.Quote(c.Request().Context(), callerOf(c), loan.QuoteInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) MyLoans(c echo.Context) error {
	var req listReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.ListMine(c.Request().Context(), callerOf(c), req.query())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) Get(c echo.Context) error {
	var req idReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.Get(c.Request().Context(), callerOf(c), req.ID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) Status(c echo.Context) error {
	var req idReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.GetStatus(c.Request().Context(), callerOf(c), req.ID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) Schedule(c echo.Context) error {
	var req idReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.Schedule(c.Request().Context(), callerOf(c), req.ID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"id": req.ID, "installments": out})
}
