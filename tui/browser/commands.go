package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func openURL(rawURL string) tea.Cmd {
	rawURL = strings.TrimSpace(rawURL)
	if !isSafeExternalURL(rawURL) {
		return nil
	}
	return func() tea.Msg {
		name, args := browserCommand(rawURL)
		_ = exec.Command(name, args...).Start()
		return nil
	}
}

func browserCommand(rawURL string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}

func isSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}

// openPager writes content to a temp file and hands the terminal to the
// pager through tea.ExecProcess.
func (m Model) openPager(content string) tea.Cmd {
	cmd, tmpPath, err := m.pager.Cmd(content)
	if err != nil {
		return func() tea.Msg {
			return pagerFinishedMsg{err: fmt.Errorf("preparing pager: %w", err)}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return pagerFinishedMsg{tmpPath: tmpPath, err: err}
	})
}
