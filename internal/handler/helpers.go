package handler

import (
	"errors"
	"net/http"
	"reflect"

	"stallpos/internal/apierror"
	"stallpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service errors to HTTP status codes and envelopes.
func respondError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
		return
	}
	var insufficient *service.InsufficientStockError
	if errors.As(err, &insufficient) {
		resp := &apierror.StockError{
			Detail:    insufficient.Error(),
			Name:      insufficient.Name,
			Required:  insufficient.Required.String(),
			Available: insufficient.Available.String(),
		}
		if insufficient.Expired.IsPositive() {
			resp.Expired = insufficient.Expired.String()
		}
		c.JSON(http.StatusConflict, resp)
		return
	}
	if errors.Is(err, service.ErrTransferReceiveRemoved) {
		c.JSON(http.StatusGone, apierror.New(err.Error()))
		return
	}
	if errors.Is(err, service.ErrUnknownIngredientType) {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	if errors.Is(err, service.ErrEmptyTransaction) {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
}

// actorFrom reads the operator identity from the X-Actor header. Identity is
// the gateway's responsibility; an absent header falls back to "unknown".
func actorFrom(c *gin.Context) string {
	if actor := c.GetHeader("X-Actor"); actor != "" {
		return actor
	}
	return "unknown"
}
