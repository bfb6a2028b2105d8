package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"adler/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	editor string
}

// NewOpener creates a new editor opener. A non-empty editor overrides the
// environment; it may carry arguments ("code --wait").
func NewOpener(editor string) *Opener {
	return &Opener{editor: strings.TrimSpace(editor)}
}

// OpenFile opens a file in the user's preferred editor and waits for it
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	args := strings.Fields(o.findEditor())
	if len(args) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR or editor in the config file")
	}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if o.editor != "" {
		return o.editor
	}

	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}

// WriteDraft writes text to a new temporary markdown file and returns its path
func WriteDraft(text string) (string, error) {
	f, err := os.CreateTemp("", "adler-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create draft: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write draft: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write draft: %w", err)
	}
	return f.Name(), nil
}

// ReadDraft reads an edited draft back. Trailing newlines added by editors
// are dropped.
func ReadDraft(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read draft: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// Edit runs the editor on text and returns the edited text. The draft file is
// removed whether or not the editor succeeds.
func Edit(o ports.EditorOpener, text string) (string, error) {
	path, err := WriteDraft(text)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	if err := o.OpenFile(path); err != nil {
		return "", fmt.Errorf("editor failed: %w", err)
	}
	return ReadDraft(path)
}
