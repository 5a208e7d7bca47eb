package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BusinessNumberHeader carries the WhatsApp number of the tenant's bot line.
// It is the only tenant identity the backend knows.
const BusinessNumberHeader = "x-whatsapp-number"

const businessNumberKey = "business_number"

// ErrNoBusinessNumber means the request did not identify a tenant.
var ErrNoBusinessNumber = errors.New("missing business number header")

// RequireBusinessNumber rejects tenant-scoped requests that do not carry the
// WhatsApp number header.
func RequireBusinessNumber() gin.HandlerFunc {
	return func(c *gin.Context) {
		n := strings.TrimSpace(c.GetHeader(BusinessNumberHeader))
		if n == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_WHATSAPP_NUMBER",
					"message": "header " + BusinessNumberHeader + " is required",
				},
			})
			return
		}
		c.Set(businessNumberKey, n)
		c.Next()
	}
}

// GetBusinessNumber returns the WhatsApp business number extracted by
// RequireBusinessNumber.
func GetBusinessNumber(c *gin.Context) (string, error) {
	v, ok := c.Get(businessNumberKey)
	if !ok {
		return "", ErrNoBusinessNumber
	}
	n, ok := v.(string)
	if !ok || n == "" {
		return "", ErrNoBusinessNumber
	}
	return n, nil
}
