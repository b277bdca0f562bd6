// Package seedphrase implements the recovery phrase backup step. Continuing
// requires the user to acknowledge the backup, either with the checkbox or
// by copying the words through the safety dialog.
package seedphrase

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jask/novara/internal/flow"
	"github.com/jask/novara/internal/onboarding"
)

// State of the backup step. Words is fixed for the controller's lifetime.
type State struct {
	Words           []string
	IsAcknowledged  bool
	ShowCopyWarning bool
	IsProcessing    bool
	ErrorMessage    string
}

type Action interface {
	seedAction()
}

// CopyRequested opens the safety dialog; nothing is copied yet.
type CopyRequested struct{}

type CopyDismissed struct{}

// CopyConfirmed copies the words and counts as acknowledging the backup.
type CopyConfirmed struct{}

type AcknowledgementChanged struct {
	Checked bool
}

type ContinuePressed struct{}

type ErrorDismissed struct{}

func (CopyRequested) seedAction()          {}
func (CopyDismissed) seedAction()          {}
func (CopyConfirmed) seedAction()          {}
func (AcknowledgementChanged) seedAction() {}
func (ContinuePressed) seedAction()        {}
func (ErrorDismissed) seedAction()         {}

type Controller struct {
	dispatchMu sync.Mutex
	words      []string
	store      *flow.Store[State]
	effects    *flow.Effects[onboarding.Effect]
}

// New draws the words from src once. The effect buffer holds a single entry
// so repeated copy confirmations never queue duplicate clipboard writes.
func New(src WordSource) (*Controller, error) {
	words, err := src.Words()
	if err != nil {
		return nil, err
	}
	if len(words) != WordCount {
		return nil, fmt.Errorf("seed source returned %d words, want %d", len(words), WordCount)
	}
	words = slices.Clone(words)
	return &Controller{
		words:   words,
		store:   flow.NewStore(State{Words: slices.Clone(words)}),
		effects: flow.NewEffects[onboarding.Effect](1),
	}, nil
}

// State returns a snapshot; its Words slice is a copy.
func (c *Controller) State() State {
	st := c.store.State()
	st.Words = slices.Clone(st.Words)
	return st
}

// Updates follows every state change. Each value carries its own copy of
// Words.
func (c *Controller) Updates(ctx context.Context) <-chan State {
	in := c.store.Subscribe(ctx)
	out := make(chan State)
	go func() {
		defer close(out)
		for st := range in {
			st.Words = slices.Clone(st.Words)
			select {
			case out <- st:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (c *Controller) Effects(ctx context.Context) <-chan onboarding.Effect {
	return c.effects.Subscribe(ctx)
}

func (c *Controller) Close() {
	c.effects.Close()
}

func (c *Controller) Dispatch(a Action) error {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	switch a := a.(type) {
	case CopyRequested:
		c.store.Update(func(s State) State {
			s.ShowCopyWarning = true
			s.ErrorMessage = ""
			return s
		})
	case CopyDismissed:
		c.store.Update(func(s State) State {
			s.ShowCopyWarning = false
			return s
		})
	case CopyConfirmed:
		c.store.Update(func(s State) State {
			s.ShowCopyWarning = false
			s.IsAcknowledged = true
			s.ErrorMessage = ""
			return s
		})
		c.effects.Emit(onboarding.CopyToClipboard{Words: slices.Clone(c.words)})
	case AcknowledgementChanged:
		c.store.Update(func(s State) State {
			s.IsAcknowledged = a.Checked
			s.ErrorMessage = ""
			return s
		})
	case ContinuePressed:
		return c.continueStep()
	case ErrorDismissed:
		c.store.Update(func(s State) State {
			s.ErrorMessage = ""
			return s
		})
	}
	return nil
}

func (c *Controller) continueStep() error {
	if !c.store.State().IsAcknowledged {
		c.store.Update(func(s State) State {
			s.ErrorMessage = onboarding.MsgBackupUnconfirmed
			return s
		})
		return onboarding.Invalid("acknowledged", onboarding.MsgBackupUnconfirmed)
	}
	c.store.Update(func(s State) State {
		s.IsProcessing = true
		s.ErrorMessage = ""
		return s
	})
	c.effects.Emit(onboarding.Continue{})
	c.store.Update(func(s State) State {
		s.IsProcessing = false
		return s
	})
	return nil
}
