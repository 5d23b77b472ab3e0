package logs

import (
	"go.uber.org/zap"

	"forest-ca/internal/errx"
)

// Err returns the zap fields for err: the error itself plus its code when it
// carries one.
func Err(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}
	if code := errx.CodeOf(err); code != "" {
		fields = append(fields, zap.String("code", string(code)))
	}
	return fields
}
