package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"memedir/internal/browser"
	"memedir/internal/tui/theme"
)

// View implements the bubbletea.Model interface
func (m *Model) View() string {
	state := m.ctrl.State()

	switch state.Mode {
	case browser.ModeBrowser:
		return m.viewBrowser()
	case browser.ModeEditor:
		return m.viewEditor(state)
	case browser.ModeRenameConfirm:
		return m.viewDialog("Please confirm rename",
			state.Path,
			"→ "+state.NewPath)
	case browser.ModeDeletePrompt:
		return m.viewDialog("Please confirm deletion", state.Path)
	case browser.ModeUploadPrompt:
		return m.viewDialog("Confirm upload", state.Path)
	case browser.ModeUploading:
		return m.viewUploading(state)
	case browser.ModeShowError:
		return m.viewError(state)
	case browser.ModeConfiguration:
		return m.viewConfiguration()
	default:
		return ""
	}
}

func (m *Model) viewBrowser() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("memedir") + "  " +
		theme.LabelStyle.Render(m.ctrl.Workdir()) + "\n\n")

	if m.searching {
		b.WriteString("Search: " + m.searchInput.View() + "\n\n")
	} else if search := m.ctrl.Search(); search != "" {
		b.WriteString("Search: " + search + "  " +
			theme.LabelStyle.Render("(esc to clear)") + "\n\n")
	}

	page := m.ctrl.CurrentPage()
	cache := m.ctrl.Cache()
	loaded := 0

	if len(page) == 0 {
		b.WriteString(theme.LabelStyle.Render("No images found.") + "\n")
	}
	for i, path := range page {
		name := filepath.Base(path)
		var line string
		if entry, ok := cache.Get(path); ok {
			loaded++
			bounds := entry.Thumb.Bounds()
			line = fmt.Sprintf("▣ %-40s %dx%d", name, bounds.Dx(), bounds.Dy())
			line = theme.LoadedStyle.Render(line)
		} else {
			line = theme.PendingStyle.Render(fmt.Sprintf("%s %-40s", m.spinner.View(), name))
		}
		if i == m.cursor {
			line = theme.SelectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	status := fmt.Sprintf("%d files · page %d/%d",
		m.ctrl.Snapshot().Len(),
		m.ctrl.PageIndex()+1,
		m.ctrl.Snapshot().Pages(m.perPage()))
	if loaded != len(page) {
		status += fmt.Sprintf(" · loading %d/%d", loaded, len(page))
	}
	b.WriteString(theme.StatusStyle.Render(status) + "\n")
	b.WriteString(m.help.View(m.keyMap))

	return b.String()
}

func (m *Model) viewEditor(state browser.AppState) string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Editor") + "\n\n")
	b.WriteString(theme.LabelStyle.Render("Original path: ") + state.Path + "\n")

	if m.renaming {
		b.WriteString(theme.LabelStyle.Render("Rename to:     ") + m.renameInput.View() + "\n")
	} else {
		b.WriteString(theme.LabelStyle.Render("Rename to:     ") + m.renameInput.Value() +
			theme.LabelStyle.Render("  (r to edit)") + "\n")
	}

	if entry, ok := m.ctrl.Cache().Get(state.Path); ok {
		bounds := entry.Thumb.Bounds()
		b.WriteString(fmt.Sprintf("Thumbnail:     %dx%d\n", bounds.Dx(), bounds.Dy()))
	}
	if info, err := os.Stat(state.Path); err == nil {
		b.WriteString("File size:     " + humanize.Bytes(uint64(info.Size())) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.StatusStyle.Render("r rename · x delete · u upload · esc back") + "\n")
	return b.String()
}

func (m *Model) viewDialog(prompt string, lines ...string) string {
	var b strings.Builder
	b.WriteString(theme.PromptStyle.Render(prompt) + "\n\n")
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + theme.StatusStyle.Render("y confirm · n cancel"))

	width := min(m.windowWidth-4, 76)
	return theme.DialogStyle(width).Render(b.String())
}

func (m *Model) viewUploading(state browser.AppState) string {
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Uploading...") + "\n\n")
	b.WriteString(m.spinner.View() + " " + state.Path + "\n")
	return b.String()
}

func (m *Model) viewError(state browser.AppState) string {
	var b strings.Builder
	b.WriteString(theme.ErrorStyle.Render("Error") + "\n\n")
	b.WriteString(state.Message + "\n\n")
	b.WriteString(theme.StatusStyle.Render("enter to continue"))
	return b.String()
}

func (m *Model) viewConfiguration() string {
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Configuration") + "\n\n")

	b.WriteString(theme.LabelStyle.Render("S3 bucket:   ") + m.cfg.S3.Bucket + "\n")
	b.WriteString(theme.LabelStyle.Render("S3 region:   ") + m.cfg.S3.Region + "\n")
	endpoint := m.cfg.S3.Endpoint
	if endpoint == "" {
		endpoint = "(default)"
	}
	b.WriteString(theme.LabelStyle.Render("S3 endpoint: ") + endpoint + "\n")
	b.WriteString(theme.LabelStyle.Render("Workdir:     ") + m.cfg.Browser.Workdir + "\n")
	b.WriteString(theme.LabelStyle.Render("Per page:    ") + fmt.Sprintf("%d", m.cfg.Browser.PerPage) + "\n")
	b.WriteString(theme.LabelStyle.Render("Extensions:  ") + strings.Join(m.cfg.Browser.Extensions, ", ") + "\n")
	b.WriteString(theme.LabelStyle.Render("Config file: ") + "edit " +
		"~/.memedir/config.toml and restart, or set MEMEDIR_* env vars\n")

	b.WriteString("\n" + theme.StatusStyle.Render("esc back"))
	return b.String()
}

// perPage reads the configured page size
func (m *Model) perPage() int {
	if m.cfg.Browser.PerPage > 0 {
		return m.cfg.Browser.PerPage
	}
	return 20
}
