package auth

const (
	ContextKeyPrincipal = "principal"
	ContextKeyRawToken  = "raw_token"

	jsonKeyError = "error"

	headerAuthorization = "Authorization"

	paramID = "id"

	bearerScheme    = "bearer"
	authHeaderParts = 2
)

const (
	msgMissingAuthorization    = "missing authorization token"
	msgInvalidOrExpiredToken   = "invalid or expired token"
	msgSessionRevoked          = "session revoked or unknown, please log in again"
	msgSessionCheckFailed      = "session check failed"
	msgNotLoggedIn             = "you're not logged in or token expired"
	msgForbidden               = "you're not allowed to perform this action"
	msgInvalidResourceID       = "invalid resource id"
	msgResourceNotFound        = "resource not found"
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgInvalidTokenClaims      = "invalid token claims"
)
