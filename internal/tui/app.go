package tui

import (
	"context"
	"errors"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/novara/internal/database/repository"
	"github.com/jask/novara/internal/navigation"
	"github.com/jask/novara/internal/onboarding"
	"github.com/jask/novara/internal/onboarding/landing"
	"github.com/jask/novara/internal/onboarding/pinsetup"
	"github.com/jask/novara/internal/onboarding/seedphrase"
)

// Notices shown on the status line.
const (
	noticeCopied  = "Frase copiada al portapapeles."
	noticeReceive = "Recibir fondos estará disponible pronto."
	noticeScan    = "Escanear para pagar estará disponible pronto."
	noticeTopUp   = "Recargar saldo estará disponible pronto."
)

// Onboarding runs the side effects of the flow. *service.OnboardingService
// satisfies it.
type Onboarding interface {
	PinReady(ctx context.Context, sess navigation.Session) error
	CopySeed(words []string) error
	Complete(ctx context.Context, sess navigation.Session) (repository.Profile, error)
}

// App renders the navigation coordinator's current screen and forwards
// keys to its controller.
type App struct {
	ctx    context.Context
	nav    *navigation.Coordinator
	svc    Onboarding
	keys   keyMap
	cursor int
	status string
	failed bool
	width  int

	// effect subscription of the current screen
	gen     int
	effects <-chan onboarding.Effect
	cancel  context.CancelFunc
}

type effectMsg struct {
	gen    int
	effect onboarding.Effect
}

type effectsClosedMsg struct{ gen int }

type opDoneMsg struct {
	notice string
	err    error
}

func New(ctx context.Context, nav *navigation.Coordinator, svc Onboarding) *App {
	return &App{ctx: ctx, nav: nav, svc: svc, keys: newKeyMap()}
}

func (a *App) Init() tea.Cmd {
	return a.subscribe()
}

// subscribe listens to the current controller's effects; the previous
// subscription is cancelled, which closes its channel.
func (a *App) subscribe() tea.Cmd {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.gen++
	a.effects = nil
	ctrl := a.nav.Screen().Controller()
	if ctrl == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancel = cancel
	a.effects = ctrl.Effects(ctx)
	return a.listen()
}

func (a *App) listen() tea.Cmd {
	if a.effects == nil {
		return nil
	}
	return waitEffect(a.gen, a.effects)
}

func waitEffect(gen int, ch <-chan onboarding.Effect) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return effectsClosedMsg{gen: gen}
		}
		return effectMsg{gen: gen, effect: e}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		return a, nil
	case tea.KeyMsg:
		if key.Matches(m, a.keys.Quit) {
			return a.quit()
		}
		return a, a.handleKey(m)
	case effectMsg:
		if m.gen != a.gen {
			return a, nil
		}
		return a, a.handleEffect(m)
	case effectsClosedMsg:
		return a, nil
	case opDoneMsg:
		if m.err != nil {
			a.fail(m.err)
		} else if m.notice != "" {
			a.notify(m.notice)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	if a.cancel != nil {
		a.cancel()
	}
	return a, tea.Quit
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	screen := a.nav.Screen()
	if key.Matches(m, a.keys.Back) && !(screen.SeedPhrase != nil && screen.SeedPhrase.State().ShowCopyWarning) {
		return a.back()
	}
	switch {
	case screen.Landing != nil:
		return a.landingKey(screen.Landing, m)
	case screen.PinSetup != nil:
		return a.pinKey(screen.PinSetup, m)
	case screen.SeedPhrase != nil:
		return a.seedKey(screen.SeedPhrase, m)
	}
	if screen.Destination == navigation.WalletHome {
		switch {
		case key.Matches(m, a.keys.Receive):
			a.notify(noticeReceive)
		case key.Matches(m, a.keys.Scan):
			a.notify(noticeScan)
		case key.Matches(m, a.keys.TopUp):
			a.notify(noticeTopUp)
		}
	}
	return nil
}

func (a *App) landingKey(c *landing.Controller, m tea.KeyMsg) tea.Cmd {
	opts := c.State().Options
	switch {
	case key.Matches(m, a.keys.UpDown):
		if m.String() == "up" || m.String() == "k" {
			a.cursor = (a.cursor + len(opts) - 1) % len(opts)
		} else {
			a.cursor = (a.cursor + 1) % len(opts)
		}
		a.dispatch(c.Dispatch(landing.RoleSelected{Role: opts[a.cursor].Role}))
	case key.Matches(m, a.keys.Pick):
		a.cursor = int(m.Runes[0] - '1')
		a.dispatch(c.Dispatch(landing.RoleSelected{Role: opts[a.cursor].Role}))
	case key.Matches(m, a.keys.Continue):
		a.dispatch(c.Dispatch(landing.ContinueClicked{}))
	case key.Matches(m, a.keys.Restore):
		a.dispatch(c.Dispatch(landing.SeedRestoreClicked{}))
	}
	// landing errors are transient: move them to the status line
	if msg := c.State().ErrorMessage; msg != "" {
		a.status, a.failed = msg, true
		_ = c.Dispatch(landing.ErrorDisplayed{})
	}
	return nil
}

func (a *App) pinKey(c *pinsetup.Controller, m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Digits):
		a.dispatch(c.Dispatch(pinsetup.DigitPressed{Digit: int(m.Runes[0] - '0')}))
	case key.Matches(m, a.keys.Erase):
		a.dispatch(c.Dispatch(pinsetup.BackspacePressed{}))
	case key.Matches(m, a.keys.Bio):
		a.dispatch(c.Dispatch(pinsetup.ToggleBiometrics{}))
	case key.Matches(m, a.keys.Continue):
		a.dispatch(c.Dispatch(pinsetup.ConfirmPressed{}))
	}
	return nil
}

func (a *App) seedKey(c *seedphrase.Controller, m tea.KeyMsg) tea.Cmd {
	st := c.State()
	if st.ShowCopyWarning {
		switch {
		case key.Matches(m, a.keys.Yes):
			a.dispatch(c.Dispatch(seedphrase.CopyConfirmed{}))
		case key.Matches(m, a.keys.No):
			a.dispatch(c.Dispatch(seedphrase.CopyDismissed{}))
		}
		return nil
	}
	switch {
	case key.Matches(m, a.keys.Copy):
		a.dispatch(c.Dispatch(seedphrase.CopyRequested{}))
	case key.Matches(m, a.keys.Ack):
		a.dispatch(c.Dispatch(seedphrase.AcknowledgementChanged{Checked: !st.IsAcknowledged}))
	case key.Matches(m, a.keys.Continue):
		a.dispatch(c.Dispatch(seedphrase.ContinuePressed{}))
	}
	return nil
}

// dispatch clears the status line after a successful action. Validation
// errors are already mirrored into the screen state.
func (a *App) dispatch(err error) {
	var verr *onboarding.ValidationError
	switch {
	case err == nil:
		if a.failed {
			a.status, a.failed = "", false
		}
	case errors.As(err, &verr):
		log.Printf("tui: %s rejected: %s", verr.Field, verr.Message)
	default:
		a.fail(err)
	}
}

func (a *App) handleEffect(m effectMsg) tea.Cmd {
	tr, err := a.nav.Handle(m.effect)
	if err != nil {
		a.fail(err)
		return a.listen()
	}
	if tr.Notice != "" {
		a.notify(tr.Notice)
	}

	var op tea.Cmd
	switch e := m.effect.(type) {
	case onboarding.CopyToClipboard:
		op = a.copySeed(e.Words)
	case onboarding.PinReady:
		op = a.persistPin(tr.Session)
	case onboarding.Continue:
		op = a.complete(tr.Session)
	}

	if tr.Moved() {
		log.Printf("tui: %s -> %s", tr.From, tr.To)
		a.cursor = 0
		return tea.Batch(op, a.subscribe())
	}
	return tea.Batch(op, a.listen())
}

func (a *App) back() tea.Cmd {
	tr, ok := a.nav.Back()
	if !ok {
		return nil
	}
	log.Printf("tui: back %s -> %s", tr.From, tr.To)
	a.cursor = 0
	if l := a.nav.Screen().Landing; l != nil {
		st := l.State()
		for i, opt := range st.Options {
			if opt.Role == st.SelectedRole {
				a.cursor = i
			}
		}
	}
	a.status, a.failed = "", false
	return a.subscribe()
}

func (a *App) copySeed(words []string) tea.Cmd {
	if a.svc == nil {
		return nil
	}
	return func() tea.Msg {
		if err := a.svc.CopySeed(words); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{notice: noticeCopied}
	}
}

func (a *App) persistPin(sess navigation.Session) tea.Cmd {
	if a.svc == nil {
		return nil
	}
	return func() tea.Msg {
		return opDoneMsg{err: a.svc.PinReady(a.ctx, sess)}
	}
}

func (a *App) complete(sess navigation.Session) tea.Cmd {
	if a.svc == nil {
		return nil
	}
	return func() tea.Msg {
		_, err := a.svc.Complete(a.ctx, sess)
		return opDoneMsg{err: err}
	}
}

func (a *App) notify(s string) {
	a.status, a.failed = s, false
}

func (a *App) fail(err error) {
	log.Printf("tui: %v", err)
	a.status, a.failed = err.Error(), true
}
