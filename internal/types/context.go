package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxCallerAddress ContextKey = "ctx_caller_address"
)

// HTTP headers the REST layer reads and echoes back
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCallerAddress = "X-Caller-Address"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// GetCallerAddress returns the on-record address of the caller as set by the
// REST layer. The core never reads this itself; handlers pass it explicitly
// into every operation so the engine stays pure with respect to
// authentication mechanics.
func GetCallerAddress(ctx context.Context) string {
	if address, ok := ctx.Value(CtxCallerAddress).(string); ok {
		return address
	}
	return ""
}

// SetCallerAddress sets the caller address in the context
func SetCallerAddress(ctx context.Context, address string) context.Context {
	return context.WithValue(ctx, CtxCallerAddress, address)
}
