package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// confirmDelete asks before a destructive change unless yes is set
func confirmDelete(what string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}

	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete %s?", what)).
		Description("This cannot be undone.").
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
