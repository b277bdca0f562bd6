// Package landing implements the role selection step.
package landing

import (
	"context"
	"slices"
	"sync"

	"github.com/jask/novara/internal/flow"
	"github.com/jask/novara/internal/onboarding"
)

// RoleOption describes how a role is presented on the landing screen.
type RoleOption struct {
	Role        onboarding.Role
	Title       string
	Description string
	Badge       string
}

// Options is the default role catalogue, in display order.
var Options = []RoleOption{
	{
		Role:        onboarding.Shopper,
		Title:       "Usuario / Comprador",
		Description: "Paga tus compras diarias usando cripto de forma rápida y segura.",
		Badge:       "Pagos diarios",
	},
	{
		Role:        onboarding.Merchant,
		Title:       "Comercio / Vendedor",
		Description: "Acepta cripto en tu negocio con liquidación transparente.",
		Badge:       "Nuevo canal",
	},
}

type State struct {
	IsLoading    bool
	SelectedRole onboarding.Role
	Options      []RoleOption
	ErrorMessage string
}

func InitialState() State {
	return State{Options: slices.Clone(Options)}
}

// Action is a user intent on the landing screen.
type Action interface {
	landingAction()
}

type RoleSelected struct {
	Role onboarding.Role
}

type ContinueClicked struct{}

type SeedRestoreClicked struct{}

// ErrorDisplayed acknowledges that the shell has shown ErrorMessage.
type ErrorDisplayed struct{}

func (RoleSelected) landingAction()       {}
func (ContinueClicked) landingAction()    {}
func (SeedRestoreClicked) landingAction() {}
func (ErrorDisplayed) landingAction()     {}

type Controller struct {
	dispatchMu sync.Mutex
	store      *flow.Store[State]
	effects    *flow.Effects[onboarding.Effect]
}

func New() *Controller {
	return &Controller{
		store:   flow.NewStore(InitialState()),
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

// DiscardEffects drops effects nobody consumed and ends the current
// subscription. Used when the screen is shown again after being left.
func (c *Controller) DiscardEffects() {
	c.effects.Reset()
}

func (c *Controller) Close() {
	c.effects.Close()
}

// Dispatch applies a. The returned error is always a *onboarding.ValidationError.
func (c *Controller) Dispatch(a Action) error {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	switch a := a.(type) {
	case RoleSelected:
		if !a.Role.Valid() {
			return nil
		}
		c.store.Update(func(s State) State {
			s.SelectedRole = a.Role
			s.ErrorMessage = ""
			return s
		})
	case ContinueClicked:
		role := c.store.State().SelectedRole
		if !role.Valid() {
			c.store.Update(func(s State) State {
				s.ErrorMessage = onboarding.MsgRoleRequired
				return s
			})
			return onboarding.Invalid("role", onboarding.MsgRoleRequired)
		}
		c.effects.Emit(onboarding.NavigateToRole{Role: role})
	case SeedRestoreClicked:
		c.effects.Emit(onboarding.NavigateToSeedRestore{})
	case ErrorDisplayed:
		c.store.Update(func(s State) State {
			s.ErrorMessage = ""
			return s
		})
	}
	return nil
}
