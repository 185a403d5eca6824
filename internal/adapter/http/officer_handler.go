package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"loan-origination/internal/usecase/review"
)

type OfficerHandler struct {
	uc  *review.Usecase
	log logrus.FieldLogger
}

func NewOfficerHandler(uc *review.Usecase, log logrus.FieldLogger) *OfficerHandler {
	return &OfficerHandler{uc: uc, log: log}
}

type reviewReq struct {
	ID     string `param:"id" json:"-" validate:"hex32"`
	Status string `json:"status" validate:"required,loanstatus"`
	Notes  string `json:"notes" validate:"max=1000"`
}

func (h *OfficerHandler) Pending(c echo.Context) error {
	var req listReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.ListPending(c.Request().Context(), callerOf(c), req.query())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OfficerHandler) List(c echo.Context) error {
	var req listReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.ListAll(c.Request().Context(), callerOf(c), req.query())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OfficerHandler) Review(c echo.Context) error {
	var req reviewReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.Review(c.Request().Context(), callerOf(c), review.ReviewInput{
		ApplicationID: req.ID,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OfficerHandler) Stats(c echo.Context) error {
	out, err := h.uc.Dashboard(c.Request().Context(), callerOf(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OfficerHandler) MyReviews(c echo.Context) error {
	var req listReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.ListMyReviews(c.Request().Context(), callerOf(c), req.query())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}
