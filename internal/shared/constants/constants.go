package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// gin context keys set by the auth middleware
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	TableClients             = "clients"
	TablePlans               = "plans"
	TableSubscriptions       = "subscriptions"
	TableSubscriptionHistory = "subscription_history"
	TablePayments            = "payments"

	DefaultCurrency = "INR"

	ErrMsgInternalServerError = "Internal server error occurred"
)
