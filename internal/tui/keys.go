package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit     key.Binding
	Back     key.Binding
	UpDown   key.Binding
	Pick     key.Binding
	Continue key.Binding
	Restore  key.Binding
	Digits   key.Binding
	Erase    key.Binding
	Bio      key.Binding
	Copy     key.Binding
	Ack      key.Binding
	Yes      key.Binding
	No       key.Binding
	Receive  key.Binding
	Scan     key.Binding
	TopUp    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "salir")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "atrás")),
		UpDown:   key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "elegir")),
		Pick:     key.NewBinding(key.WithKeys("1", "2"), key.WithHelp("1/2", "rol")),
		Continue: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continuar")),
		Restore:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "ya tengo billetera")),
		Digits:   key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "dígito")),
		Erase:    key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "borrar")),
		Bio:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "biometría")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copiar")),
		Ack:      key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("espacio", "ya la guardé")),
		Yes:      key.NewBinding(key.WithKeys("y", "s", "enter"), key.WithHelp("s", "copiar igual")),
		No:       key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancelar")),
		Receive:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recibir")),
		Scan:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "escanear")),
		TopUp:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "recargar")),
	}
}

func renderHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}
