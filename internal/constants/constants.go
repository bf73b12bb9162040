package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"
)

// Pagination defaults
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Telegram login payloads older than this are rejected (seconds).
const TelegramAuthMaxAge = 86400
