package mutation

import (
	"context"
	"errors"

	"reviewdesk/internal/logging"
)

// send runs off the UI loop. It touches no list state.
func send(ctx context.Context, transport Transport, p *Pending) (*Result, error) {
	if p == nil || p.step != StepSend {
		return nil, errors.New("mutation is not ready to send")
	}
	res := p.req.Resource
	action := p.req.Action
	fallback := res.Fallback(action)

	var body any
	if p.body != nil {
		body = p.body
	}
	p.logger.Debug("mutation request",
		logging.F("method", p.method),
		logging.F("path", p.path),
		logging.F("count", len(p.ids)),
	)
	env, err := transport.Mutate(ctx, p.method, p.path, body)
	if err != nil {
		return nil, classify(res.Name, action, fallback, err)
	}
	if env == nil || !env.Success {
		message := fallback
		if env != nil && env.Message != "" {
			message = env.Message
		}
		return nil, &RequestFailure{Resource: res.Name, Action: action, Message: message}
	}
	result := &Result{OK: true, Message: env.Message, UpdatedCount: env.UpdatedCount}
	if res.AddIDField != "" {
		if id, ok := env.ID(res.AddIDField); ok {
			result.ID = id
		}
	}
	return result, nil
}

func fail(notifier Notifier, p *Pending, err error) Effect {
	message := UserMessage(err)
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		p.logger.Error("mutation transport error", logging.Err(err))
	} else {
		p.logger.Info("mutation rejected", logging.F("message", message))
	}
	notifier.Notify(message, SeverityError)
	return Effect{Err: err, Message: message, Severity: SeverityError}
}

func succeed(notifier Notifier, p *Pending, message string) Effect {
	p.logger.Info("mutation applied", logging.F("message", message))
	notifier.Notify(message, SeveritySuccess)
	return Effect{Message: message, Severity: SeveritySuccess}
}

func newPending(logger logging.Logger, req Request, key string) *Pending {
	requestID := logging.NewRequestID()
	return &Pending{
		req:       req,
		key:       key,
		requestID: requestID,
		logger: logger.With(
			logging.F("request_id", requestID),
			logging.F("resource", req.Resource.Name),
			logging.F("action", string(req.Action)),
		),
	}
}

func notifyValidation(notifier Notifier, err *ValidationError) error {
	notifier.Notify(err.Message, SeverityError)
	return err
}

func nopNotifier(n Notifier) Notifier {
	if n == nil {
		return NotifierFunc(nil)
	}
	return n
}
