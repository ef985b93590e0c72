package types

import (
	"github.com/go-playground/validator/v10"
)

// Default locale values applied when the caller omits the
// corresponding query parameters.
const (
	DefaultLanguage = "en"
	DefaultCountry  = "us"
	DefaultCurrency = "USD"
)

// OptimizeParams carries the request-scoped locale settings plus the
// ordered list of optimizer parameters the caller selected. Selection
// order is positional: it is preserved through scheduling.
type OptimizeParams struct {
	Language           string   `validate:"required,oneof=en ja"`
	Country            string   `validate:"required,min=2,max=3"`
	Currency           string   `validate:"required,len=3"`
	SelectedOptimizers []string `validate:"-"`
}

// Validate validates the OptimizeParams using the validator.
func (p *OptimizeParams) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
