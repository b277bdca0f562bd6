// Package commands defines the novara CLI.
//
// Commands
//
//   - (none)         Run the onboarding wizard in the terminal
//   - status         Print the latest completed onboarding profile
//   - reset          Wipe stored profiles and the PIN verifier
//   - config init    Write the default config file
//   - pin verify     Check a PIN read from stdin against the stored verifier
//
// The root command loads configuration before any subcommand runs. The
// database and PIN vault are opened only by commands that need them.
package commands
