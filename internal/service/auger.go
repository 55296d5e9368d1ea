package service

import (
	"errors"
	"sync"
)

var errAugerRange = errors.New("auger percentage must be between 0 and 100")

// AugerState holds the operator-set auger speed percentage. It is plain
// process state with no persistence; the sampler reads it into every log row.
type AugerState struct {
	mu  sync.RWMutex
	pct float64
}

func NewAugerState() *AugerState {
	return &AugerState{}
}

func (a *AugerState) Pct() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.pct
}

func (a *AugerState) SetPct(pct float64) error {
	if pct < 0 || pct > 100 {
		return errAugerRange
	}
	a.mu.Lock()
	a.pct = pct
	a.mu.Unlock()
	return nil
}
