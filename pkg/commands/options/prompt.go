package options

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// PromptDescription asks for an entry description on an interactive
// terminal. An empty answer is rejected.
func PromptDescription(in io.ReadCloser, out io.WriteCloser) (string, error) {
	validate := func(input string) error {
		if strings.TrimSpace(input) == "" {
			return errors.New("empty")
		}
		return nil
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     "Description",
		Templates: templates,
		Validate:  validate,
		Stdin:     in,
		Stdout:    out,
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}
