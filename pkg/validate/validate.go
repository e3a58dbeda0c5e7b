package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	currencyRe  = regexp.MustCompile(`^[A-Za-z]{3,10}$`)
	promoCodeRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// IsCurrency reports whether s looks like a fiat or crypto ticker.
func IsCurrency(s string) bool {
	return currencyRe.MatchString(s)
}

func IsPromoCode(s string) bool {
	return promoCodeRe.MatchString(s)
}

// Register adds the "currency" and "promocode" tags to v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return IsCurrency(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("promocode", func(fl validator.FieldLevel) bool {
		return IsPromoCode(fl.Field().String())
	})
}
