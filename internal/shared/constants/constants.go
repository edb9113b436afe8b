package constants

const (
	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers                   = "users"
	TableRepairRequests          = "repair_requests"
	TableRequestStatusHistory    = "request_status_history"
	TableContractorResponses     = "contractor_responses"
	TableContractorVerifications = "contractor_verifications"
	TableContractorProfiles      = "contractor_profiles"
	TableContractorEducation     = "contractor_education"
	TableContractorDocuments     = "contractor_documents"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
)
