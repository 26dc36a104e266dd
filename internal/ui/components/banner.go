package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/surfmath/internal/ui/theme"
)

const bannerSurf = `███████╗██╗   ██╗██████╗ ███████╗
██╔════╝██║   ██║██╔══██╗██╔════╝
███████╗██║   ██║██████╔╝█████╗
╚════██║██║   ██║██╔══██╗██╔══╝
███████║╚██████╔╝██║  ██║██║
╚══════╝ ╚═════╝ ╚═╝  ╚═╝╚═╝`

const bannerMath = `███╗   ███╗ █████╗ ████████╗██╗  ██╗
████╗ ████║██╔══██╗╚══██╔══╝██║  ██║
██╔████╔██║███████║   ██║   ███████║
██║╚██╔╝██║██╔══██║   ██║   ██╔══██║
██║ ╚═╝ ██║██║  ██║   ██║   ██║  ██║
╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝`

const bannerCompact = "S U R F   M A T H"

// BannerMinWidth is the narrowest width that fits the block-letter banner.
const BannerMinWidth = 40

// RenderBanner returns the SURF MATH banner, "SURF" in sea foam over
// "MATH" in sand. Terminals narrower than BannerMinWidth get one line.
func RenderBanner(width int) string {
	surf := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	math := lipgloss.NewStyle().Foreground(theme.Sand).Bold(true)

	if width < BannerMinWidth {
		return surf.Render(bannerCompact)
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		surf.Render(bannerSurf),
		math.Render(bannerMath),
	)
}
