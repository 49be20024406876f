package middleware

import (
	"net/http" // HTTP status codes
	"strconv"  // Seconds formatting
	"time"     // Rate windows

	ratelimit "github.com/JGLTechnologies/gin-rate-limit" // Request rate limiting
	"github.com/gin-gonic/gin"                            // Gin web framework
)

func clientKey(c *gin.Context) string {
	return c.ClientIP() // Limit per client address
}

func tooManyRequests(c *gin.Context, info ratelimit.Info) {
	wait := strconv.Itoa(int(time.Until(info.ResetTime).Seconds()) + 1)
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Demasiados intentos. Vuelve a intentarlo en " + wait + " segundos."})
}

// RateLimit allows limit requests per client within each rate window
func RateLimit(rate time.Duration, limit uint) gin.HandlerFunc {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  rate,  // Window length
		Limit: limit, // Requests per window
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: tooManyRequests,
		KeyFunc:      clientKey,
	})
}
