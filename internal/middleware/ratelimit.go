package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Buckets unused for this long are dropped.
const limiterIdleTTL = 10 * time.Minute

type clientBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter keeps one token bucket per client address.
type ClientLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*clientBucket
	limit      rate.Limit
	burst      int
	trustProxy bool
	idleTTL    time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

// NewClientLimiter allows perSecond requests with the given burst per client.
// With trustProxy the client is the hop appended by our proxy to
// x-forwarded-for, otherwise the connection's remote host.
func NewClientLimiter(perSecond float64, burst int, trustProxy bool) *ClientLimiter {
	return &ClientLimiter{
		buckets:    make(map[string]*clientBucket),
		limit:      rate.Limit(perSecond),
		burst:      burst,
		trustProxy: trustProxy,
		idleTTL:    limiterIdleTTL,
		now:        time.Now,
	}
}

func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		for key, b := range l.buckets {
			if now.Sub(b.lastSeen) >= l.idleTTL {
				delete(l.buckets, key)
			}
		}
		l.lastSweep = now
	}
	b, ok := l.buckets[client]
	if !ok {
		b = &clientBucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[client] = b
	}
	b.lastSeen = now
	l.mu.Unlock()
	return b.lim.AllowN(now, 1)
}

func (l *ClientLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// ClientAddr is the remote host of r. When trustProxy is set it is the
// right-most x-forwarded-for entry, the one our proxy appended.
func ClientAddr(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("x-forwarded-for"); fwd != "" {
			hops := strings.Split(fwd, ",")
			if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
				return last
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func RateLimitMiddleware(limiter *ClientLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(ClientAddr(r, limiter.trustProxy)) {
			writeError(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next(w, r)
	}
}
