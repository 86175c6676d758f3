package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// confirmProceed runs the yes/no gate shown before every write. Declining
// or interrupting counts as "no", never as an error.
func confirmProceed() (bool, error) {
	prompt := promptui.Prompt{
		Label:     "Do you want to proceed",
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// promptFor asks for a single value. mask != 0 hides the input.
func promptFor(label string, mask rune, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Mask:     mask,
		Validate: validate,
	}
	return prompt.Run()
}

// selectSecureFields asks which of the parsed dotenv variables should be
// stored as secure entries. promptui has no checkbox, so this loops a
// select with toggle marks until "done" is picked. Cancelling, or a
// non-interactive stdin, means nothing is secure.
func selectSecureFields(names []string) []string {
	if len(names) == 0 || !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}

	selected := make(map[string]bool)
	for {
		items := make([]string, 0, len(names)+1)
		for _, name := range names {
			mark := "[ ]"
			if selected[name] {
				mark = "[x]"
			}
			items = append(items, fmt.Sprintf("%s %s", mark, name))
		}
		items = append(items, "done")

		prompt := promptui.Select{
			Label:        "Select which entries should be marked as secure",
			Items:        items,
			Size:         len(items),
			HideSelected: true,
		}

		idx, _, err := prompt.Run()
		if err != nil {
			return nil
		}
		if idx == len(names) {
			break
		}
		selected[names[idx]] = !selected[names[idx]]
	}

	picked := make([]string, 0, len(selected))
	for _, name := range names {
		if selected[name] {
			picked = append(picked, name)
		}
	}
	return picked
}
