package models

import "time"

// Пороговые значения для витрины и бейджей.
const (
	TopRatedThreshold = 4.5
	FeaturedLimit     = 3
	NewProductWindow  = 7 * 24 * time.Hour
)

// PaymentMethod константы способов оплаты
const (
	PaymentMethodCard   = "card"
	PaymentMethodBank   = "bank"
	PaymentMethodMobile = "mobile"
)

// UserType константы типов участников листа ожидания
const (
	UserTypeWorker   = "worker"
	UserTypeEmployer = "employer"
	UserTypeBoth     = "both"
)

// ValidPaymentMethods список валидных способов оплаты
var ValidPaymentMethods = map[string]struct{}{
	PaymentMethodCard:   {},
	PaymentMethodBank:   {},
	PaymentMethodMobile: {},
}

// ValidUserTypes список валидных типов участников
var ValidUserTypes = map[string]struct{}{
	UserTypeWorker:   {},
	UserTypeEmployer: {},
	UserTypeBoth:     {},
}
