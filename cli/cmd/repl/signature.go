package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/tmplgen/lang"
)

// Styles for argument hints.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// variadic marks the repeating trailing parameter of a signature.
const variadic = "..."

// sigParams returns the parameter names of sig.
func sigParams(sig lang.Signature) []string {
	switch sig {
	case lang.SigIntRange, lang.SigFloatRange:
		return []string{"min", "max"}
	case lang.SigNormal:
		return []string{"mean", "stddev"}
	case lang.SigSet:
		return []string{"a", "b", variadic}
	default:
		return nil
	}
}

// renderArgHint renders the argument form of the type at path with the
// parameter at argIndex highlighted. Unknown types render nothing.
func renderArgHint(path string, argIndex int) string {
	k, ok := lang.LookupKind(path)
	if !ok {
		return ""
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(k.Path()))

	params := sigParams(k.Signature())
	if len(params) == 0 {
		b.WriteString(signatureStyle.Render(" takes no arguments"))

		return b.String()
	}

	b.WriteString(signatureStyle.Render(":"))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(","))
		}

		// The variadic parameter stays highlighted for every later argument.
		if argIndex == i || (param == variadic && argIndex >= i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render("  " + k.Help()))

	return b.String()
}
