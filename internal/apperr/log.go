package apperr

import (
	"github.com/julianstephens/habitkeep/internal/logger"
)

// LogError writes the error to the structured logger and buffers it for
// diagnostics. Fail-safe: it never panics and never returns an error.
func LogError(e *Error) {
	defer func() { _ = recover() }()
	if e == nil {
		return
	}
	logger.Error(e.Error(), keyvals(e)...)
	storeError(e)
}

// LogWarning is LogError at warning severity.
func LogWarning(e *Error) {
	defer func() { _ = recover() }()
	if e == nil {
		return
	}
	logger.Warn(e.Error(), keyvals(e)...)
	storeError(e)
}

func keyvals(e *Error) []interface{} {
	kv := make([]interface{}, 0, 2+2*len(e.Context))
	if e.TechnicalDetails != "" {
		kv = append(kv, "details", e.TechnicalDetails)
	}
	for k, v := range e.Context {
		kv = append(kv, k, v)
	}
	return kv
}
