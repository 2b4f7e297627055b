package constant

const (
	RequestParamDate         = "date"
	RequestParamMobileNumber = "mobile_number"
	RequestParamSortBy       = "sort_by"
	RequestParamSortDir      = "sort_dir"
	RequestParamLimit        = "limit"
	RequestParamPage         = "page"
)

const (
	RequestParamID = "id"
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
)

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat     = "2006-01-02"
	TimeFormat     = "15:04:05"
	TimeFormatHHMM = "15:04"
	DateTimeFormat = "2006-01-02 15:04:05"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderAPIKey             = "X-API-Key"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Empty = ""
)
