package mutation

import (
	"context"

	"reviewdesk/internal/client"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Notifier interface {
	Notify(message string, severity Severity)
}

type NotifierFunc func(message string, severity Severity)

func (f NotifierFunc) Notify(message string, severity Severity) {
	if f != nil {
		f(message, severity)
	}
}

// Gate asks the operator to approve a destructive action. Confirm blocks
// until the operator answers.
type Gate interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type GateFunc func(ctx context.Context, prompt string) (bool, error)

func (f GateFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

var (
	AlwaysConfirm Gate = GateFunc(func(context.Context, string) (bool, error) { return true, nil })
	AlwaysDecline Gate = GateFunc(func(context.Context, string) (bool, error) { return false, nil })
)

// Transport issues one mutation request. *client.Client implements it.
type Transport interface {
	Mutate(ctx context.Context, method, path string, body any) (*client.Envelope, error)
}
