package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
)

var (
	ErrZeroAmount            = errors.New("zero amount")
	ErrZeroAddress           = errors.New("zero address")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrUnsafeApprove         = errors.New("unsafe approve: reset allowance to zero first")
	ErrPaused                = errors.New("vault paused")
)

// Ledger is the fungible share ledger of one vault. Invariant: the sum of all
// balances equals totalSupply after every mutation; mint, burn and transfer
// are the only mutators. All operations are atomic under the internal lock.
type Ledger struct {
	mu            sync.RWMutex
	shareDecimals uint8
	totalSupply   *uint256.Int
	balances      map[string]*uint256.Int
	allowances    map[string]map[string]*uint256.Int
	paused        bool
}

func New(shareDecimals uint8) *Ledger {
	return &Ledger{
		shareDecimals: shareDecimals,
		totalSupply:   new(uint256.Int),
		balances:      make(map[string]*uint256.Int),
		allowances:    make(map[string]map[string]*uint256.Int),
	}
}

func (l *Ledger) ShareDecimals() uint8 {
	return l.shareDecimals
}

func (l *Ledger) TotalSupply() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(uint256.Int).Set(l.totalSupply)
}

func (l *Ledger) BalanceOf(owner string) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if b, ok := l.balances[owner]; ok {
		return new(uint256.Int).Set(b)
	}
	return new(uint256.Int)
}

func (l *Ledger) Allowance(owner, spender string) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if m, ok := l.allowances[owner]; ok {
		if a, ok := m[spender]; ok {
			return new(uint256.Int).Set(a)
		}
	}
	return new(uint256.Int)
}

// Pause blocks all mutating operations until Unpause.
func (l *Ledger) Pause() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paused = true
}

func (l *Ledger) Unpause() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paused = false
}

func (l *Ledger) Paused() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.paused
}

func checkParties(addrs ...string) error {
	for _, a := range addrs {
		if a == "" {
			return ErrZeroAddress
		}
	}
	return nil
}

// Mint credits freshly created shares to an account.
func (l *Ledger) Mint(to string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.paused {
		return ErrPaused
	}
	if err := checkParties(to); err != nil {
		return err
	}
	if amount.IsZero() {
		return ErrZeroAmount
	}
	l.credit(to, amount)
	l.totalSupply.Add(l.totalSupply, amount)
	return nil
}

// Burn destroys shares from an account.
func (l *Ledger) Burn(from string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.paused {
		return ErrPaused
	}
	if err := checkParties(from); err != nil {
		return err
	}
	if amount.IsZero() {
		return ErrZeroAmount
	}
	if err := l.debit(from, amount); err != nil {
		return err
	}
	l.totalSupply.Sub(l.totalSupply, amount)
	return nil
}

// Transfer moves shares between accounts.
func (l *Ledger) Transfer(from, to string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.paused {
		return ErrPaused
	}
	if err := checkParties(from, to); err != nil {
		return err
	}
	if amount.IsZero() {
		return ErrZeroAmount
	}
	if err := l.debit(from, amount); err != nil {
		return err
	}
	l.credit(to, amount)
	return nil
}

// Approve sets the spender allowance. Changing a non-zero allowance directly
// to another non-zero value fails with ErrUnsafeApprove: the owner must reset
// to zero first. This is the anti-front-running guard, not a bug.
func (l *Ledger) Approve(owner, spender string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.paused {
		return ErrPaused
	}
	if err := checkParties(owner, spender); err != nil {
		return err
	}
	m, ok := l.allowances[owner]
	if !ok {
		m = make(map[string]*uint256.Int)
		l.allowances[owner] = m
	}
	if cur, ok := m[spender]; ok && !cur.IsZero() && !amount.IsZero() {
		return fmt.Errorf("%w: %s -> %s", ErrUnsafeApprove, owner, spender)
	}
	m[spender] = new(uint256.Int).Set(amount)
	return nil
}

// TransferFrom spends an allowance to move shares on the owner's behalf.
func (l *Ledger) TransferFrom(spender, from, to string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.paused {
		return ErrPaused
	}
	if err := checkParties(spender, from, to); err != nil {
		return err
	}
	if amount.IsZero() {
		return ErrZeroAmount
	}
	m, ok := l.allowances[from]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInsufficientAllowance, from, spender)
	}
	allowed, ok := m[spender]
	if !ok || allowed.Lt(amount) {
		return fmt.Errorf("%w: %s -> %s", ErrInsufficientAllowance, from, spender)
	}
	if err := l.debit(from, amount); err != nil {
		return err
	}
	l.credit(to, amount)
	allowed.Sub(allowed, amount)
	return nil
}

func (l *Ledger) credit(to string, amount *uint256.Int) {
	b, ok := l.balances[to]
	if !ok {
		b = new(uint256.Int)
		l.balances[to] = b
	}
	b.Add(b, amount)
}

func (l *Ledger) debit(from string, amount *uint256.Int) error {
	b, ok := l.balances[from]
	if !ok || b.Lt(amount) {
		return fmt.Errorf("%w: %s", ErrInsufficientBalance, from)
	}
	b.Sub(b, amount)
	return nil
}
