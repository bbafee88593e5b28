package middleware

import (
	"context"

	"github.com/escrowd/invoicing/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware tags every request with an ID for log correlation
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}

// CallerAddressMiddleware reads the caller's on-record address from the
// request headers and stores it in the context. The handlers hand it to
// the services explicitly; identity resolution happens once inside the
// service boundary.
func CallerAddressMiddleware(c *gin.Context) {
	address := c.GetHeader(types.HeaderCallerAddress)
	if address != "" {
		ctx := types.SetCallerAddress(c.Request.Context(), address)
		c.Request = c.Request.WithContext(ctx)
	}

	c.Next()
}
