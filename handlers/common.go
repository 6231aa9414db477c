package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"relocation-admin-api/backend"
	"relocation-admin-api/composer"
)

// respondBackendError maps a backend failure onto our response: the
// backend's own status and message are passed through when available, any
// transport-level failure becomes a 502. Nothing is silently swallowed.
func respondBackendError(c *gin.Context, err error, msg string) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": msg, "detail": apiErr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": msg})
}

// asFieldError unwraps a composer validation failure, if err is one.
func asFieldError(err error) (*composer.FieldError, bool) {
	var fieldErr *composer.FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr, true
	}
	return nil, false
}

// respondFieldError reports a validation failure against its offending field.
func respondFieldError(c *gin.Context, err error) {
	if fieldErr, ok := asFieldError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Error(), "field": fieldErr.Field})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// RegisterValidators adds the dashboard's custom binding rules to gin's
// validator engine. Call once at startup.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return composer.ValidPhone(fl.Field().String())
		})
	}
}
