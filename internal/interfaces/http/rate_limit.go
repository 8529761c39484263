package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
)

// RateLimitConfig parámetros del limitador por empresa.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	EntryTTL          time.Duration // entradas sin uso más antiguas se descartan
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TenantRateLimiter un token bucket por company_id.
type TenantRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

// NewTenantRateLimiter construye el limitador. RPS <= 0 lo desactiva.
func NewTenantRateLimiter(cfg RateLimitConfig) *TenantRateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.EntryTTL <= 0 {
		cfg.EntryTTL = 10 * time.Minute
	}
	return &TenantRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
		ttl:      cfg.EntryTTL,
		now:      time.Now,
	}
}

// Allow consume un token de la empresa.
func (rl *TenantRateLimiter) Allow(companyID string) bool {
	if rl.rate <= 0 {
		return true
	}
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.limiters[companyID]
	if !ok {
		rl.evict(now)
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[companyID] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// evict limpia entradas vencidas al crear una nueva; requiere rl.mu.
func (rl *TenantRateLimiter) evict(now time.Time) {
	for id, e := range rl.limiters {
		if now.Sub(e.lastSeen) > rl.ttl {
			delete(rl.limiters, id)
		}
	}
}

// Middleware aplica el límite a la empresa del token. Va después de AuthMiddleware.
func (rl *TenantRateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.Allow(GetCompanyID(c)) {
			return c.Next()
		}
		c.Set(fiber.HeaderRetryAfter, "1")
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Code: "RATE_LIMITED", Message: "demasiadas peticiones, intente más tarde",
		})
	}
}
