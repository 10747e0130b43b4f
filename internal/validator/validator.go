// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_type", validateExpenseType)
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("expense_frequency", validateExpenseFrequency)
		_ = v.RegisterValidation("payment_strategy", validatePaymentStrategy)
		_ = v.RegisterValidation("installment_frequency", validateInstallmentFrequency)
		_ = v.RegisterValidation("saving_type", validateSavingType)
		_ = v.RegisterValidation("view_mode", validateViewMode)
	}
}

func validateExpenseType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "PERSONAL", "SHARED":
		return true
	}
	return false
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "RECURRING", "ONE_TIME":
		return true
	}
	return false
}

func validateExpenseFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "MONTHLY", "YEARLY":
		return true
	}
	return false
}

func validatePaymentStrategy(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "FULL", "INSTALLMENTS":
		return true
	}
	return false
}

func validateInstallmentFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "MONTHLY", "QUARTERLY", "SEMI_ANNUAL":
		return true
	}
	return false
}

func validateSavingType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "PERSONAL", "SHARED":
		return true
	}
	return false
}

func validateViewMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "monthly", "yearly":
		return true
	}
	return false
}
