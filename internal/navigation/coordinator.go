package navigation

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/jask/novara/internal/onboarding"
	"github.com/jask/novara/internal/onboarding/landing"
	"github.com/jask/novara/internal/onboarding/pinsetup"
	"github.com/jask/novara/internal/onboarding/seedphrase"
)

// ErrUnexpectedEffect is returned when an effect does not belong to the
// current destination.
var ErrUnexpectedEffect = errors.New("navigation: unexpected effect")

// Shell notices that accompany a transition.
const (
	NoticeSeedRestore    = "Pronto podrás restaurar tu billetera con tu frase semilla."
	NoticePinBiometrics  = "PIN configurado y biometría activada."
	NoticePin            = "PIN configurado."
	NoticeOnboardingDone = "Frase guardada. Configuración inicial completa."
)

// Session carries step outputs forward. A new session starts every time
// the flow returns to landing.
type Session struct {
	ID                uuid.UUID
	Role              onboarding.Role
	Pin               string
	BiometricsEnabled bool
	SeedBackedUp      bool
}

func newSession() Session {
	return Session{ID: uuid.New()}
}

// Transition describes the outcome of Handle or Back.
type Transition struct {
	From    Destination
	To      Destination
	Session Session
	Notice  string
}

func (t Transition) Moved() bool { return t.From != t.To }

// Screen is the current destination with its controller, if it has one.
type Screen struct {
	Destination Destination
	Landing     *landing.Controller
	PinSetup    *pinsetup.Controller
	SeedPhrase  *seedphrase.Controller
}

// Controller returns the step controller or nil for static destinations.
func (s Screen) Controller() onboarding.Controller {
	switch {
	case s.Landing != nil:
		return s.Landing
	case s.PinSetup != nil:
		return s.PinSetup
	case s.SeedPhrase != nil:
		return s.SeedPhrase
	default:
		return nil
	}
}

type Coordinator struct {
	mu      sync.Mutex
	words   seedphrase.WordSource
	history []Destination
	screen  Screen
	session Session
	// landing stays alive while it is in the history so back restores it.
	landing *landing.Controller
}

// New starts the flow on landing. words supplies the recovery phrase each
// time the seed phrase step is entered.
func New(words seedphrase.WordSource) *Coordinator {
	l := landing.New()
	return &Coordinator{
		words:   words,
		history: []Destination{Landing},
		screen:  Screen{Destination: Landing, Landing: l},
		session: newSession(),
		landing: l,
	}
}

func (c *Coordinator) Current() Destination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.top()
}

func (c *Coordinator) History() []Destination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.history)
}

func (c *Coordinator) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

func (c *Coordinator) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Handle advances the flow for an effect emitted by the current screen.
// Effects that do not navigate (clipboard) return a transition that stays.
func (c *Coordinator) Handle(e onboarding.Effect) (Transition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.top()
	stay := Transition{From: from, To: from, Session: c.session}

	switch e := e.(type) {
	case onboarding.NavigateToRole:
		if from != Landing {
			return stay, unexpected(e, from)
		}
		if !e.Role.Valid() {
			return stay, fmt.Errorf("navigation: invalid role %v", e.Role)
		}
		c.session.Role = e.Role
		if e.Role == onboarding.Merchant {
			c.push(Screen{Destination: MerchantOnboarding})
		} else {
			c.push(Screen{Destination: PinSetup, PinSetup: pinsetup.New(pinsetup.DefaultParams())})
		}
		return c.transition(from, ""), nil

	case onboarding.NavigateToSeedRestore:
		if from != Landing {
			return stay, unexpected(e, from)
		}
		// seed_restore is declared but has no screen yet.
		stay.Notice = NoticeSeedRestore
		return stay, nil

	case onboarding.PinReady:
		if from != PinSetup {
			return stay, unexpected(e, from)
		}
		seed, err := seedphrase.New(c.words)
		if err != nil {
			return stay, fmt.Errorf("navigation: enter seed phrase: %w", err)
		}
		c.session.Pin = e.Pin
		c.session.BiometricsEnabled = e.BiometricsEnabled
		c.push(Screen{Destination: SeedPhrase, SeedPhrase: seed})
		notice := NoticePin
		if e.BiometricsEnabled {
			notice = NoticePinBiometrics
		}
		return c.transition(from, notice), nil

	case onboarding.CopyToClipboard:
		if from != SeedPhrase {
			return stay, unexpected(e, from)
		}
		return stay, nil

	case onboarding.Continue:
		if from != SeedPhrase {
			return stay, unexpected(e, from)
		}
		c.session.SeedBackedUp = true
		c.session.Pin = ""
		c.history = c.history[:1]
		c.dropLanding()
		c.push(Screen{Destination: WalletHome})
		return c.transition(from, NoticeOnboardingDone), nil

	default:
		return stay, unexpected(e, from)
	}
}

// Back follows the back edge of the current destination. It reports false
// when there is nowhere to go.
func (c *Coordinator) Back() (Transition, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.top()
	target, ok := backTargets[from]
	if !ok || len(c.history) < 2 {
		return Transition{From: from, To: from, Session: c.session}, false
	}

	c.history = c.history[:len(c.history)-1]
	if c.top() != target {
		c.history = append(c.history[:0], Landing)
		target = Landing
	}

	var next Screen
	switch target {
	case PinSetup:
		c.session.Pin = ""
		next = Screen{Destination: PinSetup, PinSetup: pinsetup.New(pinsetup.Params{BiometricsEnabled: c.session.BiometricsEnabled})}
	default:
		c.session = newSession()
		if c.landing == nil {
			c.landing = landing.New()
		} else {
			c.landing.DiscardEffects()
		}
		next = Screen{Destination: Landing, Landing: c.landing}
	}
	c.replace(next)
	return c.transition(from, ""), true
}

func (c *Coordinator) top() Destination {
	return c.history[len(c.history)-1]
}

func (c *Coordinator) push(s Screen) {
	if c.top() != s.Destination {
		c.history = append(c.history, s.Destination)
	}
	c.replace(s)
}

// replace closes the outgoing controller unless it is the retained landing.
func (c *Coordinator) replace(s Screen) {
	if ctrl := c.screen.Controller(); ctrl != nil && !c.retained(c.screen) {
		ctrl.Close()
	}
	c.screen = s
}

func (c *Coordinator) retained(s Screen) bool {
	return s.Landing != nil && s.Landing == c.landing
}

func (c *Coordinator) dropLanding() {
	if c.landing != nil && !c.retained(c.screen) {
		c.landing.Close()
	}
	c.landing = nil
}

func (c *Coordinator) transition(from Destination, notice string) Transition {
	return Transition{From: from, To: c.top(), Session: c.session, Notice: notice}
}

func unexpected(e onboarding.Effect, at Destination) error {
	return fmt.Errorf("%w: %T at %s", ErrUnexpectedEffect, e, at)
}
