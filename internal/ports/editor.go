package ports

import "os/exec"

// EditorOpener opens files in the user's external editor. Descriptions are
// edited through a temporary file.
type EditorOpener interface {
	// OpenFile opens path in the editor and waits for it to exit
	OpenFile(path string) error

	// Command returns an exec.Cmd for opening a file in the editor
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
