package onboarding

import "context"

// Controller is the part of a step controller the navigation layer needs:
// a way to consume its effects and to tear it down.
type Controller interface {
	Effects(ctx context.Context) <-chan Effect
	Close()
}
