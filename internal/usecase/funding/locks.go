package funding

import "sync"

// loanLocks hands out one mutex per loan id so the check-then-act
// sequence is serialized per loan without cross-loan contention.
// Entries are never evicted; a loan id is 16 random bytes and the set
// of loans a single process touches is bounded by its working set.
type loanLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLoanLocks() *loanLocks {
	return &loanLocks{locks: make(map[string]*sync.Mutex)}
}

func (k *loanLocks) get(loanID string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[loanID]
	if !ok {
		l = &sync.Mutex{}
		k.locks[loanID] = l
	}
	return l
}
