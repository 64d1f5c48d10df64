package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/lrplaceres/punto-venta/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana is a per-IP counter inside a sliding window.
type ventana struct {
	count int
	hasta time.Time
	mu    sync.Mutex
}

// ipLimiter caps requests per IP inside a sliding window. One instance
// backs the login endpoint, another the whole API.
type ipLimiter struct {
	nombre  string
	limite  int
	periodo time.Duration
	detail  string

	mu      sync.Mutex
	porIP   map[string]*ventana
	retrier bool // emit Retry-After on rejection
}

func newIPLimiter(nombre string, limite int, periodo time.Duration, detail string, retrier bool) *ipLimiter {
	l := &ipLimiter{
		nombre:  nombre,
		limite:  limite,
		periodo: periodo,
		detail:  detail,
		porIP:   make(map[string]*ventana),
		retrier: retrier,
	}
	go l.purga()
	return l
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		l.mu.Lock()
		v, ok := l.porIP[ip]
		if !ok {
			v = &ventana{}
			l.porIP[ip] = v
		}
		l.mu.Unlock()

		v.mu.Lock()
		defer v.mu.Unlock()

		now := time.Now()
		if now.After(v.hasta) {
			v.count = 0
			v.hasta = now.Add(l.periodo)
		}
		v.count++
		if v.count > l.limite {
			if l.retrier {
				c.Header("Retry-After", v.hasta.Format(time.RFC1123))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.detail))
			return
		}
		c.Next()
	}
}

// purga drops expired windows so IPs that never come back do not pile up.
func (l *ipLimiter) purga() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purgadas := 0

		l.mu.Lock()
		for ip, v := range l.porIP {
			v.mu.Lock()
			if now.After(v.hasta) {
				delete(l.porIP, ip)
				purgadas++
			}
			v.mu.Unlock()
		}
		restantes := len(l.porIP)
		l.mu.Unlock()

		if purgadas > 0 {
			log.Debug().
				Str("limiter", l.nombre).
				Int("purged", purgadas).
				Int("remaining", restantes).
				Msg("rate limiter windows purged")
		}
	}
}

var (
	loginLimiter = newIPLimiter("login", 20, time.Minute,
		"Demasiados intentos de login. Intente en 1 minuto.", false)
	apiLimiterMu sync.Mutex
	apiLimiters  = make(map[time.Duration]map[int]*ipLimiter)
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginLimiter.handler()
}

// RateLimiter caps the whole API at limit requests per window per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	apiLimiterMu.Lock()
	defer apiLimiterMu.Unlock()
	byLimit, ok := apiLimiters[window]
	if !ok {
		byLimit = make(map[int]*ipLimiter)
		apiLimiters[window] = byLimit
	}
	l, ok := byLimit[limit]
	if !ok {
		l = newIPLimiter("api", limit, window,
			"Demasiadas solicitudes. Intente nuevamente en un momento.", true)
		byLimit[limit] = l
	}
	return l.handler()
}
