package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/shared/types"
)

// DefaultTagKey is offered as the default key when collecting tags interactively.
const DefaultTagKey = "map-migrated"

// errPrompt marks failures reading user input; these end the interactive session.
var errPrompt = errors.New("reading input failed")

func ask(c types.ConsoleInterface, label, def string) (string, error) {
	answer, err := c.Prompt(label, def)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errPrompt, err)
	}
	return answer, nil
}

func confirm(c types.ConsoleInterface, label string, def bool) (bool, error) {
	ok, err := c.Confirm(label, def)
	if err != nil {
		return false, fmt.Errorf("%w: %w", errPrompt, err)
	}
	return ok, nil
}

// parseIndex validates a numeric selection in [0, n).
func parseIndex(answer string, n int) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, types.InputError("Please enter a valid number")
	}
	if idx < 0 || idx >= n {
		return 0, types.InputError("Please enter a valid index between 0 and %d", n-1)
	}
	return idx, nil
}

// selectIndex asks until a valid index is entered. There is no retry limit.
func selectIndex(c types.ConsoleInterface, label, def string, n int) (int, error) {
	for {
		answer, err := ask(c, label, def)
		if err != nil {
			return 0, err
		}
		idx, err := parseIndex(answer, n)
		if err == nil {
			return idx, nil
		}
		c.LogWarning("%s", strings.TrimPrefix(err.Error(), types.ErrInput.Error()+": "))
	}
}

// collectTags pede ao menos uma tag e continua enquanto o usuário confirmar.
func collectTags(c types.ConsoleInterface) (entity.Tags, error) {
	var tags entity.Tags
	for {
		if len(tags) > 0 {
			more, err := confirm(c, "Continue adding tags?", false)
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
		}
		key, err := ask(c, "Enter the tag key", DefaultTagKey)
		if err != nil {
			return nil, err
		}
		value, err := ask(c, "Enter the tag value", "")
		if err != nil {
			return nil, err
		}
		tags = append(tags, entity.Tag{Key: key, Value: value})
	}
	return tags, nil
}

// --- Exibição ---

func displayModels(c types.ConsoleInterface, models []entity.ModelSummary) {
	if len(models) == 0 {
		c.LogWarning("No models found.")
		return
	}
	c.Section("Available Models")
	c.Printf("Found %d models:\n", len(models))

	table := c.CreateTable()
	table.AddColumn("#")
	table.AddColumn("Model ID")
	table.AddColumn("Provider")
	table.AddColumn("Name")
	for i, m := range models {
		table.AddRow(i, m.ModelID, m.ProviderName, m.ModelName)
	}
	c.Print(table.Render())
	c.Println()
}

func displayProfiles(c types.ConsoleInterface, profiles []entity.RemoteProfile) {
	if len(profiles) == 0 {
		c.LogWarning("No inference profiles found.")
		return
	}
	c.Section("Available Inference Profiles")
	c.Printf("Found %d profiles:\n", len(profiles))

	table := c.CreateTable()
	table.AddColumn("#")
	table.AddColumn("Profile Name")
	table.AddColumn("Region")
	table.AddColumn("Model ARNs")
	table.AddColumn("Status")
	table.AddColumn("ARN")
	table.AddColumn("Tags")
	for i, p := range profiles {
		tagLines := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			tagLines = append(tagLines, fmt.Sprintf("%s: %s", t.Key, t.Value))
		}
		table.AddRow(i, p.Name, p.Region, strings.Join(p.ModelArns, "\n"), p.Status, p.InferenceProfileArn, strings.Join(tagLines, "\n"))
	}
	c.Print(table.Render())
	c.Println()
}
