package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/novara/internal/navigation"
	"github.com/jask/novara/internal/onboarding/landing"
	"github.com/jask/novara/internal/onboarding/pinsetup"
	"github.com/jask/novara/internal/onboarding/seedphrase"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	keyStyle      = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	selectedStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	optionStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("63")).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("203")).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 2)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 2)
)

func (a *App) View() string {
	screen := a.nav.Screen()
	var body, help string
	switch {
	case screen.Landing != nil:
		body = a.renderLanding(screen.Landing.State())
		help = renderHelp(a.keys.UpDown, a.keys.Pick, a.keys.Continue, a.keys.Restore, a.keys.Quit)
	case screen.PinSetup != nil:
		body = renderPin(screen.PinSetup.State())
		help = renderHelp(a.keys.Digits, a.keys.Erase, a.keys.Bio, a.keys.Continue, a.keys.Back, a.keys.Quit)
	case screen.SeedPhrase != nil:
		st := screen.SeedPhrase.State()
		body = renderSeed(st)
		if st.ShowCopyWarning {
			help = renderHelp(a.keys.Yes, a.keys.No)
		} else {
			help = renderHelp(a.keys.Copy, a.keys.Ack, a.keys.Continue, a.keys.Back, a.keys.Quit)
		}
	case screen.Destination == navigation.MerchantOnboarding:
		body = renderMerchant()
		help = renderHelp(a.keys.Back, a.keys.Quit)
	case screen.Destination == navigation.WalletHome:
		body = renderWallet()
		help = renderHelp(a.keys.Receive, a.keys.Scan, a.keys.TopUp, a.keys.Back, a.keys.Quit)
	}

	out := body + "\n\n" + footerStyle.Render(help)
	if a.status != "" {
		out += "\n" + a.renderStatus()
	}
	return out
}

func (a *App) renderStatus() string {
	text := a.status
	if a.failed {
		text = errorStyle.Render(text)
	}
	if a.width == 0 {
		return statusStyle.Render(text)
	}
	return statusStyle.Width(a.width).Render(text)
}

func (a *App) renderLanding(st landing.State) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Bienvenido a Novara"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("¿Cómo quieres usar tu billetera?"))
	b.WriteString("\n\n")
	for i, opt := range st.Options {
		card := fmt.Sprintf("%d. %s  %s\n%s", i+1, titleStyle.Render(opt.Title), badgeStyle.Render(opt.Badge), subtleStyle.Render(opt.Description))
		if opt.Role == st.SelectedRole {
			b.WriteString(selectedStyle.Render(card))
		} else {
			b.WriteString(optionStyle.Render(card))
		}
		b.WriteString("\n")
	}
	if st.ErrorMessage != "" {
		b.WriteString(errorStyle.Render(st.ErrorMessage))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPin(st pinsetup.State) string {
	title, hint := "Crea tu PIN", "Usa 6 dígitos que recuerdes con facilidad."
	if st.Stage == pinsetup.Confirm {
		title, hint = "Confirma tu PIN", "Vuelve a ingresar los mismos 6 dígitos."
	}
	dots := make([]string, pinsetup.RequiredLength)
	for i := range dots {
		dots[i] = "○"
		if i < len(st.PinInput) {
			dots[i] = "●"
		}
	}
	bio := "[ ]"
	if st.BiometricsEnabled {
		bio = "[x]"
	}
	lines := []string{
		titleStyle.Render(title),
		subtleStyle.Render(hint),
		"",
		strings.Join(dots, " "),
		"",
		bio + " Usar biometría para desbloquear",
	}
	if st.IsSaving {
		lines = append(lines, subtleStyle.Render("Guardando..."))
	}
	if st.ErrorMessage != "" {
		lines = append(lines, errorStyle.Render(st.ErrorMessage))
	}
	return strings.Join(lines, "\n")
}

func renderSeed(st seedphrase.State) string {
	lines := []string{
		titleStyle.Render("Tu frase semilla"),
		subtleStyle.Render("Anota estas 12 palabras en orden y guárdalas en un lugar seguro."),
		"",
	}
	const perRow = 3
	for i := 0; i < len(st.Words); i += perRow {
		var row []string
		for j := i; j < i+perRow && j < len(st.Words); j++ {
			row = append(row, fmt.Sprintf("%02d %-12s", j+1, st.Words[j]))
		}
		lines = append(lines, strings.Join(row, "  "))
	}
	ack := "[ ]"
	if st.IsAcknowledged {
		ack = "[x]"
	}
	lines = append(lines, "", ack+" Guardé mi frase semilla en un lugar seguro")
	if st.ErrorMessage != "" {
		lines = append(lines, errorStyle.Render(st.ErrorMessage))
	}
	out := strings.Join(lines, "\n")
	if st.ShowCopyWarning {
		warning := titleStyle.Render("¿Copiar al portapapeles?") + "\n" +
			"Otras aplicaciones podrían leer el portapapeles.\nCopiar cuenta como respaldo confirmado."
		out += "\n\n" + modalStyle.Render(warning)
	}
	return out
}

func renderMerchant() string {
	return titleStyle.Render("Comercios") + "\n" +
		subtleStyle.Render("El registro para comercios estará disponible pronto.")
}

func renderWallet() string {
	return titleStyle.Render("Mi billetera") + "\n\n" +
		"Saldo disponible\n" + titleStyle.Render("0.00 USDC") + "\n" +
		subtleStyle.Render("Aún no tienes movimientos.")
}
