package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeySubject   = "subject"
	ContextKeySubjectID = "subject_id"
	ContextKeyRequestID = "request_id"

	// Page paths handled by the access gateway
	PathLogin     = "/login"
	PathSignup    = "/signup"
	PathDashboard = "/dashboard"
	PathAdmin     = "/admin"
	PathProducts  = "/products"
	PathSettings  = "/settings"

	// QueryRedirectTo carries the deferred destination through the login page.
	QueryRedirectTo = "redirectTo"

	// Database table names
	TableSubjects                = "subjects"
	TableUserRoles               = "user_roles"
	TableProducts                = "products"
	TableProductBatches          = "product_batches"
	TableNotificationPreferences = "notification_preferences"

	// Notification defaults
	DefaultAlertThresholdDays = 7
	DefaultDigestLimit        = 5
	DefaultCategory           = "Uncategorized"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
