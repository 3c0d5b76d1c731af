package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldChatID     = "chat_id"
	FieldUserID     = "user_id"
	FieldCommand    = "command"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldBackend    = "backend"
	FieldSheet      = "sheet"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentBot      = "bot"
	ComponentSheets   = "sheets"
	ComponentBackend  = "backend"
	ComponentTelegram = "telegram"
)

// Operations defines standard operation names
const (
	OpAuthorize = "authorize"
	OpParse     = "parse"
	OpSubmit    = "submit"
	OpReply     = "reply"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
