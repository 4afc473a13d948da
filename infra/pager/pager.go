package pager

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvPager prepares an external pager command using $PAGER (fallback: "less").
// It does NOT run the pager itself; callers use tea.ExecProcess with the
// returned *exec.Cmd so Bubble Tea properly suspends raw terminal mode.
type EnvPager struct{}

// NewEnvPager creates an EnvPager.
func NewEnvPager() *EnvPager {
	return &EnvPager{}
}

// Cmd writes content to a temp file and returns the pager command for it.
// The caller removes the file with Cleanup once the pager exits.
func (p *EnvPager) Cmd(content string) (*exec.Cmd, string, error) {
	fields := strings.Fields(os.Getenv("PAGER"))
	if len(fields) == 0 {
		fields = []string{"less"}
	}

	tmpFile, err := os.CreateTemp("", "lemmyterm-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	args := append(fields[1:], tmpPath)
	cmd := exec.Command(fields[0], args...)
	return cmd, tmpPath, nil
}

// Cleanup removes a temp file created by Cmd. A missing file is not an error.
func (p *EnvPager) Cleanup(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing temp file: %w", err)
	}
	return nil
}
