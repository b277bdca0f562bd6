// Package onboarding contains the vocabulary shared by the onboarding step
// controllers: the selectable roles, the effects a controller may emit and
// the validation error every user-correctable failure is reported with.
//
// The controllers live in the landing, pinsetup and seedphrase subpackages.
// Each owns one flow.Store for its state and one flow.Effects for its
// one-shot events. Dispatch applies an action, updates state and may emit.
package onboarding
