package ui

import (
	"github.com/charmbracelet/huh"

	"github.com/ibericastore/whatstriage/internal/message"
)

// DispatchMethod says where a composed message goes.
type DispatchMethod string

const (
	DispatchWhatsApp  DispatchMethod = "whatsapp"
	DispatchClipboard DispatchMethod = "clipboard"
)

// ComposeForm collects the phase and dispatch method for one order.
type ComposeForm struct {
	form   *huh.Form
	phase  message.Phase
	method DispatchMethod
}

func NewComposeForm(alreadyContacted bool) *ComposeForm {
	cf := &ComposeForm{
		phase:  message.PhaseFirstContact,
		method: DispatchWhatsApp,
	}
	if alreadyContacted {
		cf.phase = message.PhaseContinuation
	}

	cf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[message.Phase]().
				Title("Conversation phase").
				Options(
					huh.NewOption("Greeting — short opener, no order details", message.PhaseGreeting),
					huh.NewOption("First contact — full message", message.PhaseFirstContact),
					huh.NewOption("Continuation — neutral follow-up", message.PhaseContinuation),
				).
				Value(&cf.phase),

			huh.NewSelect[DispatchMethod]().
				Title("Send via").
				Options(
					huh.NewOption("WhatsApp (open wa.me link)", DispatchWhatsApp),
					huh.NewOption("Copy to clipboard", DispatchClipboard),
				).
				Value(&cf.method),
		),
	)

	return cf
}

func (cf *ComposeForm) Form() *huh.Form {
	return cf.form
}

// Result returns the operator's choices once the form completed.
func (cf *ComposeForm) Result() (message.Phase, DispatchMethod) {
	return cf.phase, cf.method
}
