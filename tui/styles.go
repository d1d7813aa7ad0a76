package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	focusStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	fieldStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	placeholder    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	popupStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	activeItem     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("75"))
	symbolStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nameStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	rankStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	invalidDateStl = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
