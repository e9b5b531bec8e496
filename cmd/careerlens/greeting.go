package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

var signedOutGreetings = [...]string{
	"Your next role is out there. Your session, however, is not.",
	"The model has opinions about your career. Sign in to hear them.",
	"No session found. Recruiters call this 'a gap'.",
	"Someone with your degree just got predicted a great role. It wasn't you. You're signed out.",
	"Career insights are waiting. They are very patient. You don't have to be.",
	"The prediction history remembers everyone. It has no page for you yet.",
	"Ten degrees, dozens of specializations, one login form between you and a prediction.",
	"Your education details can't predict anything from out here.",
	"The confidence bars are at zero. Coincidentally, so is your session.",
	"Sign in. The worst the model can say is 'consider alternatives'.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")).
		Bold(true).
		Render("C A R E E R L E N S")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Job role predictions from your education profile.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"careerlens", "Open the dashboard (interactive TUI)"},
		{"careerlens login", "Sign in with email or username"},
		{"careerlens logout", "Clear your session"},
		{"careerlens --version", "Show version"},
		{"careerlens help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}
	env := descStyle.Render("CAREERLENS_API_URL  server address (default http://127.0.0.1:5000)")
	fmt.Printf("\n  Environment:\n    %s\n\n", env)
}

func printSignedOutGreeting() {
	msg := signedOutGreetings[rand.Intn(len(signedOutGreetings))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")).
		Bold(true).
		Render("CAREERLENS")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("To sign in: careerlens login")

	fmt.Printf("\n%s\n\n%s\n\n%s\n\n", title, quote, hint)
}
