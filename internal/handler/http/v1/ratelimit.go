package v1

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	rateLimitCleanupInterval = time.Minute
	rateLimitClientTTL       = 10 * time.Minute
)

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает мутации на пользователя (token bucket)
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	limit   rate.Limit
	burst   int
}

// NewRateLimiter создает лимитер на perMinute запросов в минуту.
// Фоновая очистка останавливается вместе с ctx.
func NewRateLimiter(ctx context.Context, perMinute int) *RateLimiter {
	perMinute = max(perMinute, 1)
	l := &RateLimiter{
		clients: make(map[string]*rateLimitClient),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
	}

	go func() {
		ticker := time.NewTicker(rateLimitCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.cleanup(time.Now())
			case <-ctx.Done():
				return
			}
		}
	}()
	return l
}

// Allow расходует токен клиента key
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	client, found := l.clients[key]
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = client
	}
	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

// Middleware ключует по пользователю, для анонимных - по IP
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if identity := currentIdentity(c); identity != nil {
			key = "user:" + identity.ID
		}
		if !l.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, client := range l.clients {
		if now.Sub(client.lastSeen) > rateLimitClientTTL {
			delete(l.clients, key)
		}
	}
}
