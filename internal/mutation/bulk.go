package mutation

import (
	"context"
	"fmt"
	"net/http"

	"reviewdesk/internal/logging"
	"reviewdesk/internal/selection"
	"reviewdesk/internal/types"
)

const (
	PolicyReload = "reload"
	PolicyPatch  = "patch"
)

// Bulk submits one batched request for every selected item of a list.
type Bulk struct {
	transport Transport
	notifier  Notifier
	opts      options
}

func NewBulk(transport Transport, notifier Notifier, opts ...Option) *Bulk {
	return &Bulk{
		transport: transport,
		notifier:  nopNotifier(notifier),
		opts:      buildOptions(opts),
	}
}

func (b *Bulk) Busy() *Busy {
	return b.opts.busy
}

// Begin snapshots the selection and marks the trigger busy. An empty
// selection is notified and returned as *ValidationError.
func (b *Bulk) Begin(list *selection.List, req Request) (*Pending, error) {
	if !req.Action.Bulk() {
		return nil, fmt.Errorf("%s is not a bulk action", req.Action)
	}
	ids := list.SelectedIDs()
	if len(ids) == 0 {
		return nil, notifyValidation(b.notifier, &ValidationError{Message: req.Resource.EmptySelection})
	}
	key := req.Resource.BulkKey()
	if !b.opts.busy.acquire(key) {
		return nil, ErrBusy
	}

	p := newPending(b.opts.logger, req, key)
	p.step = StepSend
	p.ids = ids
	p.method = http.MethodPost
	p.path = req.Resource.BulkPath()
	p.body = bulkBody(req, ids)
	if flag, ok := p.body[req.Resource.FlagField].(bool); ok && req.Resource.FlagField != "" {
		p.flag = &flag
	}
	p.logger.Info("bulk mutation started", logging.F("count", len(ids)))
	return p, nil
}

func (b *Bulk) Send(ctx context.Context, p *Pending) (*Result, error) {
	return send(ctx, b.transport, p)
}

// Settle reconciles the list with the outcome and releases the trigger.
// On failure nothing local changes.
func (b *Bulk) Settle(list *selection.List, p *Pending, res *Result, err error) Effect {
	if p == nil || p.step == StepDone {
		return Effect{}
	}
	p.step = StepDone
	defer b.opts.busy.release(p.key)

	if err != nil {
		return fail(b.notifier, p, err)
	}
	count := res.UpdatedCount
	if count == 0 {
		count = len(p.ids)
	}
	message := res.Message
	if message == "" {
		message = p.req.Resource.SuccessMessage(p.req.Action, count)
	}
	effect := succeed(b.notifier, p, message)
	if b.opts.policy == PolicyPatch && p.flag != nil {
		list.SetFlagged(p.ids, *p.flag)
		list.SetAll(false)
		return effect
	}
	effect.Reload = true
	return effect
}

// Apply runs every stage in order on the calling goroutine.
func (b *Bulk) Apply(ctx context.Context, list *selection.List, req Request) (Effect, error) {
	p, err := b.Begin(list, req)
	if err != nil {
		return Effect{Err: err}, err
	}
	res, err := b.Send(ctx, p)
	effect := b.Settle(list, p, res, err)
	return effect, effect.Err
}

func bulkBody(req Request, ids []types.ItemID) map[string]any {
	body := map[string]any{}
	if field := req.Resource.FlagField; field != "" {
		switch req.Action {
		case types.ActionMarkReview:
			body[field] = true
		case types.ActionUnmarkReview:
			body[field] = false
		}
	}
	for k, v := range req.Fields {
		body[k] = v
	}
	idsField := req.Resource.BulkIDsField
	if idsField == "" {
		idsField = "ids"
	}
	body[idsField] = ids
	return body
}
