package auth

import (
	"sync"
	"time"
)

// Limiter ограничивает частоту попыток входа по ключу (email) на основе токен-бакета.
// Очистка неактивных бакетов выполняется лениво при вызове Allow.
type Limiter struct {
	buckets     map[string]*bucket
	now         func() time.Time
	lastCleanup time.Time
	rate        int
	window      time.Duration
	mu          sync.Mutex
}

// bucket представляет bucket для конкретного ключа
type bucket struct {
	lastRefill time.Time
	tokens     int
}

// NewLimiter создает новый limiter
// rate - максимальное количество попыток за window
// rate <= 0 отключает ограничение
func NewLimiter(rate int, window time.Duration) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
		now:     time.Now,
	}
}

// Allow проверяет, разрешена ли еще одна попытка для ключа, и расходует ее
func (l *Limiter) Allow(key string) bool {
	if l == nil || l.rate <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.cleanupLocked(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.rate, lastRefill: now}
		l.buckets[key] = b
	}

	// Пополняем токены, если окно прошло
	if now.Sub(b.lastRefill) >= l.window {
		b.tokens = l.rate
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}

	return false
}

// Reset сбрасывает счетчик ключа после успешного входа
func (l *Limiter) Reset(key string) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.buckets, key)
}

// cleanupLocked удаляет buckets, которые не использовались дольше двух окон
func (l *Limiter) cleanupLocked(now time.Time) {
	if now.Sub(l.lastCleanup) < l.window*2 {
		return
	}
	l.lastCleanup = now

	for key, b := range l.buckets {
		if now.Sub(b.lastRefill) > l.window*2 {
			delete(l.buckets, key)
		}
	}
}
