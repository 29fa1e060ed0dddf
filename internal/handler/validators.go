package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/gb4everrr/fettlemed-backend/pkg/timeutil"
)

// RegisterValidators installs custom binding validators on gin's validator
// engine. Must be called once before the router starts serving.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("wallclock", validWallClock)
	}
}

// validWallClock accepts "HH:MM" or "HH:MM:SS" wall-clock values.
func validWallClock(fl validator.FieldLevel) bool {
	_, err := timeutil.ParseClock(fl.Field().String())
	return err == nil
}
