package http

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"tip-advisor/domain"
)

var registerOnce sync.Once

// registerValidations adds the custom binding rules used by the request types.
func registerValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("servicequality", func(fl validator.FieldLevel) bool {
			return domain.ServiceQuality(fl.Field().String()).Valid()
		})
	})
}
