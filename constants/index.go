package constants

const (
	MISSING_LOGIN_INPUT  = "MISSING_LOGIN_INPUT"
	INVALID_EMAIL        = "INVALID_EMAIL"
	INVALID_PASSWORD     = "INVALID_PASSWORD"
	ACCOUNT_NOT_ACTIVE   = "ACCOUNT_NOT_ACTIVE"
	EMAIL_ALREADY_USED   = "EMAIL_ALREADY_USED"
	USERNAME_TAKEN       = "USERNAME_TAKEN"
	ERROR_INTERNAL_ERROR = "INTERNAL_SERVER_ERROR"

	DATA_INPUT_IS_NOT_NUMBER = "DATA_INPUT_IS_NOT_NUMBER"
	INVALID_INPUT            = "INVALID_INPUT"

	EVENT_NOT_FOUND       = "EVENT_NOT_FOUND"
	CATEGORY_NOT_FOUND    = "CATEGORY_NOT_FOUND"
	TICKET_TYPE_NOT_FOUND = "TICKET_TYPE_NOT_FOUND"
	TICKET_NOT_FOUND      = "TICKET_NOT_FOUND"
	USER_NOT_FOUND        = "USER_NOT_FOUND"

	NOT_ORGANIZER      = "NOT_AN_ORGANIZER_OF_THIS_EVENT"
	NOT_TICKET_OWNER   = "NOT_THE_OWNER_OF_THIS_TICKET"
	TICKET_TYPE_EXISTS = "TICKET_TYPE_ALREADY_EXISTS_FOR_EVENT"

	TICKET_TYPE_UNAVAILABLE = "TICKET_TYPE_UNAVAILABLE"
	INSUFFICIENT_STOCK      = "INSUFFICIENT_STOCK"
	INSUFFICIENT_FUNDS      = "INSUFFICIENT_FUNDS"
	PURCHASE_CONFLICT       = "PURCHASE_CONFLICT_RETRY"
)
