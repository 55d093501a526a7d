// Package ui implements as6mig.Prompter for the ways a confirmation can be
// obtained: a terminal question, a terminal dialog, the question's default
// when nobody is watching, or --yes.
package ui
