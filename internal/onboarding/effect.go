package onboarding

import "strings"

// Effect is a one-shot event emitted by a controller. It never lives in
// state and is delivered at most once.
type Effect interface {
	effect()
}

// NavigateToSeedRestore asks the shell to open wallet restoration.
type NavigateToSeedRestore struct{}

// NavigateToRole is the terminal effect of the landing step.
type NavigateToRole struct {
	Role Role
}

// PinReady is the terminal effect of the PIN step.
type PinReady struct {
	Pin               string
	BiometricsEnabled bool
}

// CopyToClipboard asks the shell to copy the recovery words.
type CopyToClipboard struct {
	Words []string
}

// Text is the clipboard payload: the words joined by single spaces.
func (e CopyToClipboard) Text() string {
	return strings.Join(e.Words, " ")
}

// Continue is the terminal effect of the seed phrase step.
type Continue struct{}

func (NavigateToSeedRestore) effect() {}
func (NavigateToRole) effect()        {}
func (PinReady) effect()              {}
func (CopyToClipboard) effect()       {}
func (Continue) effect()              {}
