package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewAuthRateLimitMiddleware rate limits the patient register/login endpoints
// at 10 requests per minute per IP. Credential endpoints carry a tighter
// budget than the general 100/min API limit.
func NewAuthRateLimitMiddleware() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: time.Minute,
		Limit:  10,
	}

	store := memory.NewStore()
	return mgin.NewMiddleware(limiter.New(store, rate))
}
