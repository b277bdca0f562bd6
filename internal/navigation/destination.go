package navigation

import "fmt"

// Destination is a node of the onboarding graph.
type Destination int

const (
	Landing Destination = iota
	PinSetup
	MerchantOnboarding
	SeedRestore
	SeedPhrase
	WalletHome
)

var routes = map[Destination]string{
	Landing:            "landing",
	PinSetup:           "pin_setup",
	MerchantOnboarding: "merchant_onboarding",
	SeedRestore:        "seed_restore",
	SeedPhrase:         "seed_phrase",
	WalletHome:         "wallet_home",
}

// Route is the stable identifier the shell selects a screen by.
func (d Destination) Route() string {
	if r, ok := routes[d]; ok {
		return r
	}
	return fmt.Sprintf("destination(%d)", int(d))
}

func (d Destination) String() string { return d.Route() }

func ParseRoute(route string) (Destination, error) {
	for d, r := range routes {
		if r == route {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown route %q", route)
}

// backTargets is the explicit back edge of every destination that has one.
var backTargets = map[Destination]Destination{
	PinSetup:           Landing,
	MerchantOnboarding: Landing,
	SeedPhrase:         PinSetup,
	WalletHome:         Landing,
}
