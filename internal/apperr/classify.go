package apperr

import (
	"errors"
	"strings"
)

// QuotaUserMessage is shown when the storage engine runs out of space.
const QuotaUserMessage = "Storage quota exceeded. Please free up some space."

// quotaSignatures are message fragments the SQLite engine emits when the
// database cannot grow: SQLITE_FULL (result code 13) and the I/O-level
// disk-full conditions.
var quotaSignatures = []string{
	"database or disk is full",
	"disk is full",
	"no space left on device",
	"quota exceeded",
}

// IsQuotaExceeded reports whether err is a storage-full condition.
func IsQuotaExceeded(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range quotaSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// ClassifyStorage reclassifies a raw storage-engine failure into the
// taxonomy so the raw driver error never reaches a caller. Quota conditions
// map to STORAGE_QUOTA_EXCEEDED regardless of the fallback; errors that are
// already taxonomy errors pass through unchanged. The raw message is kept as
// technical detail.
func ClassifyStorage(err error, fallback Code, userMessage string, ctx Context) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if IsQuotaExceeded(err) {
		return New(CodeStorageQuotaExceeded, QuotaUserMessage).
			WithDetails(err.Error()).
			WithContext(ctx)
	}
	return New(fallback, userMessage).
		WithDetails(err.Error()).
		WithContext(ctx)
}
