package confirm

import (
	"context"
	"fmt"
	"time"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/modal"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/money"
)

// Interceptor executes a policy against one form submission: check
// preconditions, run the confirmation sequence through the modal
// service, then strip currency fields. One generic interceptor replaces
// a handler per form.
type Interceptor struct {
	Modal *modal.Service
}

func NewInterceptor(m *modal.Service) *Interceptor {
	return &Interceptor{Modal: m}
}

// Run returns true when the submission may proceed. It blocks on each
// dialog until the user (or the presenter driving the modal service)
// resolves it. Currency fields are stripped on every path, matching the
// source behavior of unformatting inputs regardless of outcome.
func (i *Interceptor) Run(ctx context.Context, p Policy, sub Submission) (bool, error) {
	defer stripCurrencyFields(p, sub)

	if p.Precondition != nil {
		if n := p.Precondition(sub); n != nil {
			if err := i.await(ctx, i.Modal.Alert(n.Message, n.Title, n.Severity)); err != nil {
				return false, err
			}
			return false, nil
		}
	}

	if p.Skip != nil {
		if n := p.Skip(sub); n != nil {
			if err := i.await(ctx, i.Modal.Alert(n.Message, n.Title, n.Severity)); err != nil {
				return false, err
			}
			return false, nil
		}
	}

	steps := []Step{}
	if p.Steps != nil {
		steps = p.Steps(sub)
	}
	for _, step := range steps {
		switch step.Kind {
		case StepAlert:
			if err := i.await(ctx, i.Modal.Alert(step.Message, step.Title, step.Severity)); err != nil {
				return false, err
			}
		case StepPause:
			select {
			case <-time.After(step.Pause):
			case <-ctx.Done():
				return false, ctx.Err()
			}
		case StepConfirm:
			ch := i.Modal.Confirm(step.Message, step.Title)
			select {
			case ok := <-ch:
				if !ok {
					return false, nil
				}
			case <-ctx.Done():
				return false, ctx.Err()
			}
		default:
			return false, fmt.Errorf("unknown step kind %d", step.Kind)
		}
	}
	return true, nil
}

// await drains an alert resolution; explicit OK and backdrop dismissal
// both count as "closed".
func (i *Interceptor) await(ctx context.Context, ch <-chan bool) error {
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func stripCurrencyFields(p Policy, sub Submission) {
	if sub.Values == nil {
		return
	}
	for _, field := range p.CurrencyFields {
		if raw := sub.Values.Get(field); raw != "" {
			sub.Values.Set(field, fmt.Sprintf("%d", money.ParseUserInput(raw)))
		}
	}
}
