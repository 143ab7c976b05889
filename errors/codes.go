package errors

// ErrorCode identifies an application error class independent of HTTP status.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	ErrorCode_SESSION_NOT_FOUND ErrorCode = 2000
	ErrorCode_MEDIA_REQUIRED    ErrorCode = 2001
	ErrorCode_MEDIA_MISSING     ErrorCode = 2002
	ErrorCode_MEDIA_REJECTED    ErrorCode = 2003
	ErrorCode_PROCESS_CONFLICT  ErrorCode = 2004

	ErrorCode_PROCESSING_FAILED    ErrorCode = 3000
	ErrorCode_EXTRACTION_FAILED    ErrorCode = 3001
	ErrorCode_TRANSCRIPTION_FAILED ErrorCode = 3002

	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 4001
	ErrorCode_DB_QUERY_FAILED            ErrorCode = 4002
	ErrorCode_DB_TRANSACTION_FAILED      ErrorCode = 4003
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_SESSION_NOT_FOUND:          "SESSION_NOT_FOUND",
	ErrorCode_MEDIA_REQUIRED:             "MEDIA_REQUIRED",
	ErrorCode_MEDIA_MISSING:              "MEDIA_MISSING",
	ErrorCode_MEDIA_REJECTED:             "MEDIA_REJECTED",
	ErrorCode_PROCESS_CONFLICT:           "PROCESS_CONFLICT",
	ErrorCode_PROCESSING_FAILED:          "PROCESSING_FAILED",
	ErrorCode_EXTRACTION_FAILED:          "EXTRACTION_FAILED",
	ErrorCode_TRANSCRIPTION_FAILED:       "TRANSCRIPTION_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:      "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name for the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
