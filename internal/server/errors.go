package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/radixtech/quotehub/internal/auth/domain"
	"github.com/radixtech/quotehub/internal/authorization"
	catalogdomain "github.com/radixtech/quotehub/internal/catalog/domain"
	"github.com/radixtech/quotehub/internal/catalog/importer"
	"github.com/radixtech/quotehub/internal/money"
	"github.com/radixtech/quotehub/internal/providers/email"
	"github.com/radixtech/quotehub/internal/providers/pdf"
	quotedomain "github.com/radixtech/quotehub/internal/quote/domain"
	"github.com/radixtech/quotehub/internal/quote/reference"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`

	// Stock shortfall details, present only on confirmation failures.
	Model     string `json:"model,omitempty"`
	Required  int    `json:"required,omitempty"`
	Available int    `json:"available,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var stockErr *quotedomain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return http.StatusBadRequest, errorPayload{
			Type:      "insufficient_stock",
			Message:   stockErr.Error(),
			Model:     stockErr.Model,
			Required:  stockErr.Required,
			Available: stockErr.Available,
		}
	}

	var headerErr *importer.HeaderError
	if errors.As(err, &headerErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: headerErr.Error(),
		}
	}
	var rowErr *importer.RowError
	if errors.As(err, &rowErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: rowErr.Error(),
		}
	}

	switch {
	case isInputError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: err.Error(),
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidToken):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isForbiddenError(err):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, catalogdomain.ErrModelExists),
		errors.Is(err, quotedomain.ErrAlreadyConfirmed):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, email.ErrNotConfigured):
		return http.StatusNotImplemented, errorPayload{
			Type:    "not_implemented",
			Message: err.Error(),
		}
	case errors.Is(err, reference.ErrSequenceOverflow),
		errors.Is(err, pdf.ErrRender):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isInputError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, money.ErrInvalidQuantity),
		errors.Is(err, money.ErrInvalidPrice),
		errors.Is(err, money.ErrInvalidInstallation),
		errors.Is(err, money.ErrInvalidDiscount),
		errors.Is(err, catalogdomain.ErrInvalidModel),
		errors.Is(err, catalogdomain.ErrInvalidPrice),
		errors.Is(err, catalogdomain.ErrInvalidStock),
		errors.Is(err, catalogdomain.ErrInvalidStatus),
		errors.Is(err, authdomain.ErrMissingFields),
		errors.Is(err, authdomain.ErrInvalidRole),
		errors.Is(err, quotedomain.ErrEmptyQuote),
		errors.Is(err, quotedomain.ErrMalformedPayload):
		return true
	default:
		return false
	}
}

func isForbiddenError(err error) bool {
	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, authdomain.ErrPendingApproval),
		errors.Is(err, authdomain.ErrSelfDelete),
		errors.Is(err, authdomain.ErrSelfDemote),
		errors.Is(err, quotedomain.ErrForbidden),
		errors.Is(err, quotedomain.ErrNotConfirmed):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, quotedomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
