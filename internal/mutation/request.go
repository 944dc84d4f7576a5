package mutation

import (
	"sync"

	"reviewdesk/internal/logging"
	"reviewdesk/internal/types"
)

// Request is the typed action a key binding or CLI command hands to a
// coordinator. Bulk requests take their ids from the current selection.
type Request struct {
	Resource Resource
	Action   types.Action
	ID       types.ItemID
	Label    string
	Enabled  bool
	Value    string
	Fields   map[string]any
}

// Result is the decoded outcome of one successful request.
type Result struct {
	OK           bool
	Message      string
	ID           types.ItemID
	UpdatedCount int
}

// Effect tells the caller what to do after Settle beyond the list changes
// already applied.
type Effect struct {
	Reload     bool
	ClearInput bool
	Abandoned  bool
	Removed    types.ItemID
	Appended   types.ItemID
	Message    string
	Severity   Severity
	Err        error
}

type Step int

const (
	StepSend Step = iota
	StepConfirm
	StepDone
)

// Pending carries one action between Begin, Send and Settle. Send reads it
// from a worker goroutine; nothing mutates it after Begin except the UI loop
// through Confirmed and Settle.
type Pending struct {
	req       Request
	step      Step
	key       string
	ids       []types.ItemID
	body      map[string]any
	method    string
	path      string
	prompt    string
	prior     bool
	flag      *bool
	requestID string
	logger    logging.Logger
}

func (p *Pending) Step() Step {
	if p == nil {
		return StepDone
	}
	return p.step
}

func (p *Pending) Prompt() string {
	if p == nil {
		return ""
	}
	return p.prompt
}

// IDs returns the ids the request targets, in render order.
func (p *Pending) IDs() []types.ItemID {
	if p == nil {
		return nil
	}
	return append([]types.ItemID(nil), p.ids...)
}

// Busy records triggers that have a request in flight. It only advises the
// UI; two coordinators may share one Busy.
type Busy struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewBusy() *Busy {
	return &Busy{keys: map[string]struct{}{}}
}

func (b *Busy) acquire(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.keys[key]; ok {
		return false
	}
	b.keys[key] = struct{}{}
	return true
}

func (b *Busy) release(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.keys, key)
}

func (b *Busy) Active(key string) bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.keys[key]
	return ok
}

func (b *Busy) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.keys)
}

type Option func(*options)

type options struct {
	logger logging.Logger
	policy string
	busy   *Busy
}

func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBulkPolicy selects "reload" (default) or "patch".
func WithBulkPolicy(policy string) Option {
	return func(o *options) {
		o.policy = policy
	}
}

func WithBusy(busy *Busy) Option {
	return func(o *options) {
		if busy != nil {
			o.busy = busy
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.Nop(), policy: PolicyReload}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.busy == nil {
		o.busy = NewBusy()
	}
	return o
}
