package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// helpView renders the full-screen key reference. Any key dismisses it.
func (a *App) helpView() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Big Trip — keys"))
	b.WriteString("\n\n")

	b.WriteString(LabelStyle.Render("Browsing"))
	b.WriteString("\n")
	browse := []key.Binding{
		a.keys.Up, a.keys.Down, a.keys.Top, a.keys.Bottom,
		a.keys.Edit, a.keys.Favorite, a.keys.NewPoint,
		a.keys.NextFilter, a.keys.NextSort, a.keys.Quit,
	}
	for _, binding := range browse {
		b.WriteString(helpLine(binding))
	}

	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Editing"))
	b.WriteString("\n")
	form := DefaultFormKeyMap()
	edit := []key.Binding{
		form.NextField, form.PrevField, form.CycleValue,
		form.Toggle, form.Save, form.Delete, form.Close,
	}
	for _, binding := range edit {
		b.WriteString(helpLine(binding))
	}

	b.WriteString("\n")
	b.WriteString(MutedStyle.Render("Press any key to close"))
	return b.String()
}

func helpLine(binding key.Binding) string {
	h := binding.Help()
	return "  " + HelpKeyStyle.Width(12).Render(h.Key) + HelpDescStyle.Render(h.Desc) + "\n"
}
