package mutation

import (
	"context"
	"fmt"
	"net/http"

	"reviewdesk/internal/logging"
	"reviewdesk/internal/selection"
	"reviewdesk/internal/types"
)

// AddingLabel replaces the add trigger's label while an add is in flight.
const AddingLabel = "Adding…"

// Item applies toggle, delete, archive and add to a single list entry.
type Item struct {
	transport Transport
	notifier  Notifier
	opts      options
}

func NewItem(transport Transport, notifier Notifier, opts ...Option) *Item {
	return &Item{
		transport: transport,
		notifier:  nopNotifier(notifier),
		opts:      buildOptions(opts),
	}
}

func (c *Item) Busy() *Busy {
	return c.opts.busy
}

// Begin validates the request and prepares it. Toggle is applied to the
// list immediately. Delete and archive return a Pending at StepConfirm;
// the caller must answer with Confirmed before sending.
func (c *Item) Begin(list *selection.List, req Request) (*Pending, error) {
	switch {
	case req.Action == types.ActionToggle:
		return c.beginToggle(list, req)
	case req.Action.Destructive():
		return c.beginRemove(list, req)
	case req.Action == types.ActionAdd:
		return c.beginAdd(req)
	default:
		return nil, fmt.Errorf("%s is not a single item action", req.Action)
	}
}

func (c *Item) beginToggle(list *selection.List, req Request) (*Pending, error) {
	if !list.Contains(req.ID) {
		return nil, ErrNotListed
	}
	key := req.Resource.ItemKey(req.ID)
	if !c.opts.busy.acquire(key) {
		return nil, ErrBusy
	}
	prior, _ := list.SetEnabled(req.ID, req.Enabled)

	p := newPending(c.opts.logger, req, key)
	p.step = StepSend
	p.ids = []types.ItemID{req.ID}
	p.prior = prior
	p.method = http.MethodPatch
	p.path = req.Resource.ItemPath(req.ID)
	p.body = map[string]any{"enabled": req.Enabled}
	return p, nil
}

func (c *Item) beginRemove(list *selection.List, req Request) (*Pending, error) {
	item, ok := list.Item(req.ID)
	if !ok {
		return nil, ErrNotListed
	}
	key := req.Resource.ItemKey(req.ID)
	if !c.opts.busy.acquire(key) {
		return nil, ErrBusy
	}
	label := req.Label
	if label == "" {
		label = item.Label
	}

	p := newPending(c.opts.logger, req, key)
	p.step = StepConfirm
	p.ids = []types.ItemID{req.ID}
	p.prompt = req.Resource.ConfirmPrompt(req.Action, label)
	p.method = http.MethodDelete
	p.path = req.Resource.ItemPath(req.ID)
	return p, nil
}

func (c *Item) beginAdd(req Request) (*Pending, error) {
	value, err := ValidateEmail(req.Value)
	if err != nil {
		return nil, notifyValidation(c.notifier, err.(*ValidationError))
	}
	key := req.Resource.AddKey()
	if !c.opts.busy.acquire(key) {
		return nil, ErrBusy
	}
	req.Value = value

	field := req.Resource.AddField
	if field == "" {
		field = "value"
	}
	p := newPending(c.opts.logger, req, key)
	p.step = StepSend
	p.method = http.MethodPost
	p.path = req.Resource.AddPath()
	p.body = map[string]any{field: value}
	return p, nil
}

// Confirmed records the operator's answer. A declined action is abandoned
// without any change or notification.
func (c *Item) Confirmed(p *Pending, ok bool) bool {
	if p == nil || p.step != StepConfirm {
		return false
	}
	if !ok {
		p.step = StepDone
		c.opts.busy.release(p.key)
		p.logger.Debug("mutation declined")
		return false
	}
	p.step = StepSend
	return true
}

func (c *Item) Send(ctx context.Context, p *Pending) (*Result, error) {
	return send(ctx, c.transport, p)
}

func (c *Item) Settle(list *selection.List, p *Pending, res *Result, err error) Effect {
	if p == nil || p.step == StepDone {
		return Effect{}
	}
	p.step = StepDone
	defer c.opts.busy.release(p.key)

	req := p.req
	if err != nil {
		if req.Action == types.ActionToggle {
			if _, ok := list.SetEnabled(req.ID, p.prior); !ok {
				p.logger.Debug("toggled item no longer listed")
			}
		}
		return fail(c.notifier, p, err)
	}

	message := res.Message
	if message == "" {
		message = req.Resource.SuccessMessage(req.Action, 1)
	}
	switch req.Action {
	case types.ActionDelete, types.ActionArchive:
		effect := succeed(c.notifier, p, message)
		if !list.Remove(req.ID) {
			p.logger.Debug("removed item no longer listed")
			return effect
		}
		effect.Removed = req.ID
		effect.Reload = list.Len() == 0
		return effect
	case types.ActionAdd:
		effect := succeed(c.notifier, p, message)
		effect.ClearInput = true
		if res.ID == "" {
			p.logger.Warn("add response carried no id")
			effect.Reload = true
			return effect
		}
		list.Append(selection.Item{ID: res.ID, Label: req.Value, Enabled: true})
		effect.Appended = res.ID
		p.logger.Info("item appended", logging.F("id", res.ID.String()))
		return effect
	default:
		return succeed(c.notifier, p, message)
	}
}

// Apply runs every stage in order, asking gate before destructive actions.
func (c *Item) Apply(ctx context.Context, list *selection.List, req Request, gate Gate) (Effect, error) {
	p, err := c.Begin(list, req)
	if err != nil {
		return Effect{Err: err}, err
	}
	if p.Step() == StepConfirm {
		if gate == nil {
			gate = AlwaysDecline
		}
		ok, err := gate.Confirm(ctx, p.Prompt())
		if err != nil {
			c.Confirmed(p, false)
			return Effect{Abandoned: true, Err: err}, err
		}
		if !c.Confirmed(p, ok) {
			return Effect{Abandoned: true}, nil
		}
	}
	res, err := c.Send(ctx, p)
	effect := c.Settle(list, p, res, err)
	return effect, effect.Err
}
