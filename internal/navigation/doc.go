// Package navigation routes the onboarding flow.
//
// The Coordinator owns the destination history and the controller of the
// current screen. Feeding it the terminal effect of that controller moves
// the flow forward along a fixed graph:
//
//	landing --shopper--> pin_setup --pin ready--> seed_phrase --continue--> wallet_home
//	landing --merchant--> merchant_onboarding
//
// Every transition builds a fresh controller for the destination, seeded
// with the outputs of earlier steps carried in the Session. Reaching
// wallet_home collapses history to [landing, wallet_home].
package navigation
