// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"wealthdesk/internal/models"
)

// fundCodeRegex matches scheme codes as published by the NAV provider.
var fundCodeRegex = regexp.MustCompile(`^[0-9A-Za-z]{1,20}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn installs the custom tags and type conversions on v.
func RegisterOn(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
	_ = v.RegisterValidation("investment_type", validateInvestmentType)
	_ = v.RegisterValidation("sip_status", validateSIPStatus)
	_ = v.RegisterValidation("fund_code", validateFundCode)
}

// decimalValue lets numeric tags such as gt=0 apply to decimal fields.
func decimalValue(field reflect.Value) interface{} {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		return d.InexactFloat64()
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		return d.Decimal.InexactFloat64()
	}
	return nil
}

func validateInvestmentType(fl validator.FieldLevel) bool {
	switch models.InvestmentType(fl.Field().String()) {
	case models.InvestmentTypeLumpsum, models.InvestmentTypeSIP:
		return true
	}
	return false
}

func validateSIPStatus(fl validator.FieldLevel) bool {
	switch models.SIPStatus(fl.Field().String()) {
	case models.SIPStatusActive, models.SIPStatusInactive:
		return true
	}
	return false
}

func validateFundCode(fl validator.FieldLevel) bool {
	return IsFundCode(fl.Field().String())
}

// IsFundCode reports whether s is a well-formed scheme code.
func IsFundCode(s string) bool {
	return fundCodeRegex.MatchString(s)
}
