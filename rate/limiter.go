// Package rate tracks a token-bucket limiter per client so abusive callers
// can be throttled without slowing everyone else down.
package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Limiter struct {
	expiry  time.Duration
	burst   int
	limit   rate.Limit
	clients map[string]*clientLimiter
	mu      sync.Mutex
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Every converts a minimum interval between events into a rate limit.
func Every(interval time.Duration) rate.Limit {
	return rate.Every(interval)
}

// NewLimiter allows burst immediate events per client, refilling at limit.
// Clients idle longer than expiryMins minutes are forgotten.
func NewLimiter(burst int, expiryMins int, limit rate.Limit) *Limiter {
	l := &Limiter{
		expiry:  time.Duration(expiryMins) * time.Minute,
		burst:   burst,
		limit:   limit,
		clients: make(map[string]*clientLimiter),
	}
	go l.cleanup()
	return l
}

// Check reports whether the client identified by id may proceed.
func (l *Limiter) Check(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[id]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[id] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter.Allow()
}

func (l *Limiter) cleanup() {
	for {
		time.Sleep(time.Minute)

		l.mu.Lock()
		for id, cl := range l.clients {
			if time.Since(cl.lastAccess) > l.expiry {
				delete(l.clients, id)
			}
		}
		l.mu.Unlock()
	}
}
