package joblock

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/usecase"
)

// LocalLocker guards jobs inside one process. A held key expires after its
// ttl; a zero ttl holds it until release.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]localLease
	now   func() time.Time
	seqNo uint64
}

type localLease struct {
	seq       uint64
	expiresAt time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		held: make(map[string]localLease),
		now:  time.Now,
	}
}

func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if lease, ok := l.held[key]; ok && (lease.expiresAt.IsZero() || now.Before(lease.expiresAt)) {
		return nil, usecase.ErrJobLocked
	}

	l.seqNo++
	lease := localLease{seq: l.seqNo}
	if ttl > 0 {
		lease.expiresAt = now.Add(ttl)
	}
	l.held[key] = lease

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if current, ok := l.held[key]; ok && current.seq == lease.seq {
			delete(l.held, key)
		}
		return nil
	}, nil
}
