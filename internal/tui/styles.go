package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // Cyan — primary accent
	colorAccent      = lipgloss.Color("#FFD700") // Gold — link mode / attention
	colorSuccess     = lipgloss.Color("#00E676") // Green — saved
	colorDanger      = lipgloss.Color("#FF5252") // Red — save failure
	colorMuted       = lipgloss.Color("#636363") // Gray — de-emphasized
	colorMutedLight  = lipgloss.Color("#8C8C8C") // Lighter gray — normal text
	colorWhite       = lipgloss.Color("#EEEEEE") // Off-white — primary text
	colorBrightWhite = lipgloss.Color("#FFFFFF") // Pure white — emphatic text
	colorSurface     = lipgloss.Color("#1E1E2E") // Dark surface — status bar bg
	colorSurfaceDim  = lipgloss.Color("#181825") // Darkest surface — footer bg
	colorMilestone   = lipgloss.Color("#B388FF") // Violet — milestone diamonds
	colorGrid        = lipgloss.Color("#2E2E3E") // Column boundary ticks
)

// monthBackgrounds tints header cells by calendar month (January first); the
// palette repeats every six months so adjacent months always alternate.
var monthBackgrounds = [12]lipgloss.Color{
	"#1A2333", "#1A2B22", "#2E2A18", "#2E1D20", "#241F33", "#18302A",
	"#1A2333", "#1A2B22", "#2E2A18", "#2E1D20", "#241F33", "#18302A",
}

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

// Bar glyphs.
const (
	barFill       = "█"
	subBarFill    = "▓"
	phaseBarFill  = "▒"
	milestoneMark = "◆"
	gridTick      = "·"
)

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorPrimary).
				Bold(true)

	styleStatusSaved = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorSuccess)

	styleStatusPending = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorAccent)

	styleStatusError = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorDanger).
				Bold(true)
)

// Row styles.
var (
	styleStreamHeader = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleSelectionIndicator = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleGridTick = lipgloss.NewStyle().
			Foreground(colorGrid)

	styleHeaderText = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleLinkSource = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleMilestone = lipgloss.NewStyle().
			Foreground(colorMilestone).
			Bold(true)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Background(colorSurfaceDim)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight).
			Background(colorSurfaceDim)
)

// Edit overlay styles.
var (
	styleEditOverlay = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	styleEditTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)
)
