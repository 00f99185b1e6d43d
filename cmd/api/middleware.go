package main

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/siddharth180703/NextHire/internal/auth"
	"github.com/siddharth180703/NextHire/internal/handler"
	"github.com/siddharth180703/NextHire/pkg/model"
	"github.com/siddharth180703/NextHire/pkg/response"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// AuthMiddleware accepts the token cookie or an Authorization bearer header,
// rejects revoked tokens and deleted users, and stores the claims.
func (app *application) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifyClaims(c, app.Handler.TokenMaker)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "User not authenticated")
			return
		}

		ctx := c.Request.Context()
		revoked, err := app.Revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			app.Logger.Error("auth: revocation lookup", zap.Error(err))
			response.Abort(c, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if revoked {
			response.Abort(c, http.StatusUnauthorized, "User not authenticated")
			return
		}

		// Check if user still exists
		if _, err := app.Users.GetUserByID(ctx, claims.UserID); err != nil {
			response.Abort(c, http.StatusUnauthorized, "User not authenticated")
			return
		}

		c.Set(auth.ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole lets only the given roles through. It must run after
// AuthMiddleware.
func (app *application) RequireRole(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := app.Handler.GetClaimsFromContext(c)
		if claims == nil {
			response.Abort(c, http.StatusUnauthorized, "User not authenticated")
			return
		}
		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, "You are not allowed to access this resource.")
	}
}

func verifyClaims(c *gin.Context, tokenMaker *auth.JWTMaker) (*auth.UserClaims, error) {
	token, err := c.Cookie(handler.TokenCookie)
	if err != nil || token == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			return nil, errors.New("authorization token is missing")
		}
		fields := strings.Fields(authHeader)
		if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
			return nil, errors.New("invalid authorization header")
		}
		token = fields[1]
	}
	return tokenMaker.VerifyToken(token)
}

// requestLogger logs one line per request with zap.
func (app *application) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}

func (app *application) corsMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowOrigins = app.Config.GetCORSOrigins()
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}
	return cors.New(config)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter hands out one token bucket per client IP and forgets IPs
// idle for longer than idleTTL.
type ipRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
}

func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  3 * time.Minute,
	}
}

func (l *ipRateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *ipRateLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idleTTL {
			delete(l.visitors, ip)
		}
	}
}

// rateLimit is a no-op when the limiter is disabled in config.
func (app *application) rateLimit() gin.HandlerFunc {
	if !app.Config.Limiter.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newIPRateLimiter(app.Config.Limiter.RPS, app.Config.Limiter.Burst)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-app.done:
				return
			case now := <-ticker.C:
				limiter.sweep(now)
			}
		}
	}()

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
