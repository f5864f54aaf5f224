package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/studyhub-dev/studyhub/shared/errors"
	"github.com/studyhub-dev/studyhub/shared/logger"
	"github.com/studyhub-dev/studyhub/shared/middleware/ratelimiter"
	"github.com/studyhub-dev/studyhub/shared/utils"
)

var errRateLimited = &errors.ErrorWithStatusCode{Message: "Too many requests, try again later", StatusCode: http.StatusTooManyRequests}

// KeyFunc picks the rate limiting key for a request.
type KeyFunc func(r *http.Request) (string, error)

func RateLimit(rl *ratelimiter.Limiter, key KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k, err := key(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, errors.Validation(err.Error()))
				return
			}
			if !rl.Allow(k) {
				logger.Log.Warn("rate limit exceeded", "key", k, "path", r.URL.Path)
				utils.WriteErrorAndStatusCode(w, errRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIP keys on the TCP peer address. Forwarding headers are not trusted.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}
