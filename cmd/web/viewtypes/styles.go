package viewtypes

// Shared CSS class strings for templates. Use as {{ class "Button" }}.

// Button is the primary call to action.
var Button = "btn"

// GhostButton is the outlined variant.
var GhostButton = "btn btn-ghost"

// SectionTitle is the centered h2 of a page section.
var SectionTitle = "section-title"

// Card is the white panel used by service, member and post tiles.
var Card = "card"

var classes = map[string]string{
	"Button":       Button,
	"GhostButton":  GhostButton,
	"SectionTitle": SectionTitle,
	"Card":         Card,
}

// Class returns the class string registered under name, or "" when unknown.
func Class(name string) string {
	return classes[name]
}
