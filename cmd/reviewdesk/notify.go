package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"reviewdesk/internal/mutation"
)

type colorNotifier struct {
	stdout io.Writer
	stderr io.Writer
	ok     *color.Color
	bad    *color.Color
}

func newColorNotifier(stdout, stderr io.Writer) *colorNotifier {
	return &colorNotifier{
		stdout: stdout,
		stderr: stderr,
		ok:     color.New(color.FgGreen),
		bad:    color.New(color.FgRed, color.Bold),
	}
}

func (n *colorNotifier) Notify(message string, severity mutation.Severity) {
	if severity == mutation.SeverityError {
		n.bad.Fprintln(n.stderr, "✗ "+message)
		return
	}
	n.ok.Fprintln(n.stdout, "✓ "+message)
}

// reportedError marks an error whose message already reached the operator
// through the notifier.
type reportedError struct {
	err error
}

func (e reportedError) Error() string {
	return e.err.Error()
}

func (e reportedError) Unwrap() error {
	return e.err
}

func markReported(err error) error {
	if err == nil {
		return nil
	}
	var validation *mutation.ValidationError
	var failure *mutation.RequestFailure
	var transport *mutation.TransportError
	if errors.As(err, &validation) || errors.As(err, &failure) || errors.As(err, &transport) {
		return reportedError{err: err}
	}
	return err
}

type promptGate struct {
	stdin  io.ReadCloser
	stdout io.WriteCloser
}

func newPromptGate() mutation.Gate {
	return promptGate{stdin: os.Stdin, stdout: os.Stdout}
}

func (g promptGate) Confirm(_ context.Context, prompt string) (bool, error) {
	p := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
		Stdin:     g.stdin,
		Stdout:    g.stdout,
	}
	_, err := p.Run()
	return confirmAnswer(err)
}

// confirmAnswer maps promptui's confirm outcome: nil is yes, ErrAbort is no.
func confirmAnswer(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return false, fmt.Errorf("confirmation interrupted: %w", err)
	default:
		return false, err
	}
}
