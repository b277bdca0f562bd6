// Package pinsetup implements the two-stage PIN creation step: the user
// enters a PIN, then enters it again to confirm.
package pinsetup

import (
	"context"
	"strconv"
	"sync"

	"github.com/jask/novara/internal/flow"
	"github.com/jask/novara/internal/onboarding"
)

// RequiredLength is the exact number of digits in a PIN.
const RequiredLength = 6

type Stage int

const (
	Create Stage = iota
	Confirm
)

func (s Stage) String() string {
	if s == Confirm {
		return "confirm"
	}
	return "create"
}

// State is the PIN step state. FirstPin is non-empty only in Confirm.
// IsSaving is true only while the PinReady effect is being emitted.
type State struct {
	Stage             Stage
	PinInput          string
	FirstPin          string
	BiometricsEnabled bool
	IsSaving          bool
	ErrorMessage      string
}

func (s State) IsPinComplete() bool {
	return len(s.PinInput) == RequiredLength
}

func InitialState(biometricsEnabled bool) State {
	return State{Stage: Create, BiometricsEnabled: biometricsEnabled}
}

// Params carries the values the step starts from.
type Params struct {
	BiometricsEnabled bool
}

// DefaultParams is used on first entry to the step.
func DefaultParams() Params {
	return Params{BiometricsEnabled: true}
}

type Action interface {
	pinAction()
}

// DigitPressed appends Digit (0-9) to the input.
type DigitPressed struct {
	Digit int
}

type BackspacePressed struct{}

type ToggleBiometrics struct{}

type ConfirmPressed struct{}

type ErrorDismissed struct{}

func (DigitPressed) pinAction()     {}
func (BackspacePressed) pinAction() {}
func (ToggleBiometrics) pinAction() {}
func (ConfirmPressed) pinAction()   {}
func (ErrorDismissed) pinAction()   {}

type Controller struct {
	dispatchMu sync.Mutex
	store      *flow.Store[State]
	effects    *flow.Effects[onboarding.Effect]
}

func New(p Params) *Controller {
	return &Controller{
		store:   flow.NewStore(InitialState(p.BiometricsEnabled)),
		effects: flow.NewEffects[onboarding.Effect](flow.DefaultCapacity),
	}
}

func (c *Controller) State() State {
	return c.store.State()
}

func (c *Controller) Updates(ctx context.Context) <-chan State {
	return c.store.Subscribe(ctx)
}

func (c *Controller) Effects(ctx context.Context) <-chan onboarding.Effect {
	return c.effects.Subscribe(ctx)
}

func (c *Controller) Close() {
	c.effects.Close()
}

// Dispatch applies a. Digit and backspace presses that cannot apply are
// silently ignored; only ConfirmPressed can fail.
func (c *Controller) Dispatch(a Action) error {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	switch a := a.(type) {
	case DigitPressed:
		if a.Digit < 0 || a.Digit > 9 {
			return nil
		}
		c.store.Update(func(s State) State {
			if s.IsSaving || len(s.PinInput) >= RequiredLength {
				return s
			}
			s.PinInput += strconv.Itoa(a.Digit)
			s.ErrorMessage = ""
			return s
		})
	case BackspacePressed:
		c.store.Update(func(s State) State {
			if s.IsSaving || s.PinInput == "" {
				return s
			}
			s.PinInput = s.PinInput[:len(s.PinInput)-1]
			s.ErrorMessage = ""
			return s
		})
	case ToggleBiometrics:
		c.store.Update(func(s State) State {
			s.BiometricsEnabled = !s.BiometricsEnabled
			return s
		})
	case ConfirmPressed:
		return c.confirm()
	case ErrorDismissed:
		c.store.Update(func(s State) State {
			s.ErrorMessage = ""
			return s
		})
	}
	return nil
}

func (c *Controller) confirm() error {
	cur := c.store.State()
	if cur.IsSaving {
		return nil
	}
	if len(cur.PinInput) < RequiredLength {
		c.fail(onboarding.MsgPinLength, false)
		return onboarding.Invalid("pin", onboarding.MsgPinLength)
	}

	switch cur.Stage {
	case Create:
		c.store.Update(func(s State) State {
			s.Stage = Confirm
			s.FirstPin = cur.PinInput
			s.PinInput = ""
			s.ErrorMessage = ""
			return s
		})
		return nil
	default:
		if cur.PinInput != cur.FirstPin {
			// Stay in Confirm: only the confirmation entry is retried.
			c.fail(onboarding.MsgPinMismatch, true)
			return onboarding.Invalid("pin", onboarding.MsgPinMismatch)
		}
		c.store.Update(func(s State) State {
			s.IsSaving = true
			s.ErrorMessage = ""
			return s
		})
		c.effects.Emit(onboarding.PinReady{Pin: cur.PinInput, BiometricsEnabled: cur.BiometricsEnabled})
		c.store.Set(InitialState(cur.BiometricsEnabled))
		return nil
	}
}

func (c *Controller) fail(msg string, clearInput bool) {
	c.store.Update(func(s State) State {
		if clearInput {
			s.PinInput = ""
		}
		s.ErrorMessage = msg
		return s
	})
}
