package middleware

import (
	"net/http"

	"farmstock_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimitMiddleware throttles requests per client IP using an in-memory
// store. The rate uses the limiter format, e.g. "10-M" for ten per minute.
// Intended for the public intake endpoints, which are otherwise an open
// relay to the notification mailbox.
func RateLimitMiddleware(formatted string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		// Misconfigured rate is a startup defect; fall back to a safe default.
		utils.LogError(err, "Invalid rate limit format, falling back to 10-M")
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	instance := limiter.New(memory.NewStore(), rate)

	return func(c *gin.Context) {
		context, err := instance.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
				Code: utils.ErrCodeInternalServer, Message: "Rate limiter failure",
			})
			return
		}
		if context.Reached {
			utils.RespondWithError(c, http.StatusTooManyRequests, utils.APIError{
				Code: utils.ErrCodeRateLimited, Message: "Too many requests, try again later",
			})
			return
		}
		c.Next()
	}
}
