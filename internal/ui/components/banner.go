package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

const bannerArt = `
 ██╗   ██╗ ██████╗  ██████╗ █████╗ ██████╗
 ██║   ██║██╔═══██╗██╔════╝██╔══██╗██╔══██╗
 ██║   ██║██║   ██║██║     ███████║██████╔╝
 ╚██╗ ██╔╝██║   ██║██║     ██╔══██║██╔══██╗
  ╚████╔╝ ╚██████╔╝╚██████╗██║  ██║██████╔╝
   ╚═══╝   ╚═════╝  ╚═════╝╚═╝  ╚═╝╚═════╝  drill`

const bannerCompact = "V O C A B   D R I L L"

// BannerWidth is the narrowest terminal that fits the full banner.
const BannerWidth = 52

// Banner returns the application banner styled in the primary color.
// Uses a compact fallback for terminals narrower than BannerWidth.
func Banner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < BannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
