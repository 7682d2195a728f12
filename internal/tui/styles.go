package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite      = lipgloss.Color("#FFFFFF")
	colorLightGray  = lipgloss.Color("#CCCCCC")
	colorGray       = lipgloss.Color("#888888")
	colorDarkGray   = lipgloss.Color("#444444")
	colorTerracotta = lipgloss.Color("#C8553D")
	colorMustard    = lipgloss.Color("#F2A541")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTerracotta).
			Align(lipgloss.Center).
			MarginTop(1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Align(lipgloss.Center).
			MarginBottom(1)

	menuItemStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			PaddingLeft(2)

	commandStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	commandDescStyle = lipgloss.NewStyle().
				Foreground(colorGray).
				PaddingLeft(1)

	inputStyle = lipgloss.NewStyle().
			Foreground(colorMustard).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Padding(0)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorTerracotta).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true).
			MarginTop(1)
)

const logo = `
   ██████╗██╗  ██╗███████╗███████╗██████╗  ██████╗ ████████╗
  ██╔════╝██║  ██║██╔════╝██╔════╝██╔══██╗██╔═══██╗╚══██╔══╝
  ██║     ███████║█████╗  █████╗  ██████╔╝██║   ██║   ██║
  ██║     ██╔══██║██╔══╝  ██╔══╝  ██╔══██╗██║   ██║   ██║
  ╚██████╗██║  ██║███████╗██║     ██████╔╝╚██████╔╝   ██║
   ╚═════╝╚═╝  ╚═╝╚══════╝╚═╝     ╚═════╝  ╚═════╝    ╚═╝
`
