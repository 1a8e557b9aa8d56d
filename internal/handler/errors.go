package handler

import (
	"errors"
	"net/http"

	"campus-commerce/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// domainHTTPError maps engine error kinds onto HTTP statuses. Denial
// messages keep their numeric shortfall so the operator can pick another
// payment method on the spot.
func domainHTTPError(err error) error {
	var (
		visibility   *service.VisibilityError
		quantity     *service.InvalidQuantityError
		notAccepted  *service.MethodNotAcceptedError
		creditLimit  *service.CreditLimitExceededError
		lowBalance   *service.InsufficientBalanceError
		pinMismatch  *service.PinMismatchError
		locked       *service.AccountLockedError
		stockMissing *service.InsufficientStockError
	)

	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.As(err, &quantity),
		errors.As(err, &notAccepted):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &visibility):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.As(err, &creditLimit), errors.As(err, &lowBalance):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())
	case errors.As(err, &pinMismatch):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.As(err, &locked):
		return echo.NewHTTPError(http.StatusLocked, err.Error())
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionExpired):
		return echo.NewHTTPError(http.StatusGone, err.Error())
	case errors.As(err, &stockMissing):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	default:
		return err
	}
}
