package actions

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"autofix.dev/autofix/internal/config"
	"autofix.dev/autofix/internal/runtime"
)

// InitOptions contains options for the init command
type InitOptions struct {
	Force bool
}

// Initialize interactively creates the .autofix.yml configuration.
func Initialize(rc *runtime.Context, opts InitOptions) error {
	splog := rc.Splog

	if config.Exists(rc.RepoRoot) && !opts.Force {
		return fmt.Errorf("%s already exists; use --force to overwrite", config.FileName)
	}

	cfg := config.Default()

	splog.Info("Configuring automated fix tools. Commands run from the repository root.")

	for {
		tool, err := promptTool(len(cfg.Tools) + 1)
		if err != nil {
			return err
		}
		cfg.Tools = append(cfg.Tools, tool)

		more := false
		if err := survey.AskOne(&survey.Confirm{
			Message: "Add another tool?",
			Default: false,
		}, &more); err != nil {
			return fmt.Errorf("canceled")
		}
		if !more {
			break
		}
	}

	if err := promptIdentity(cfg); err != nil {
		return err
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Commit message for automated fixes",
		Default: cfg.CommitMessage,
	}, &cfg.CommitMessage); err != nil {
		return fmt.Errorf("canceled")
	}

	push := cfg.ShouldPush()
	if err := survey.AskOne(&survey.Confirm{
		Message: "Push fix commits back to the remote?",
		Default: push,
	}, &push); err != nil {
		return fmt.Errorf("canceled")
	}
	cfg.Push = &push

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.Save(rc.RepoRoot, cfg); err != nil {
		return err
	}

	splog.Success("Wrote %s with %d tool(s)", config.FileName, len(cfg.Tools))
	splog.Tip("Run 'autofix doctor' to verify the setup.")
	return nil
}

// promptTool asks for one tool definition.
func promptTool(num int) (config.Tool, error) {
	var tool config.Tool

	if err := survey.AskOne(&survey.Input{
		Message: fmt.Sprintf("Name for tool %d (e.g. lint, format)", num),
	}, &tool.Name, survey.WithValidator(survey.Required)); err != nil {
		return tool, fmt.Errorf("canceled")
	}

	var command string
	if err := survey.AskOne(&survey.Input{
		Message: fmt.Sprintf("Command for %q (executable plus shared args)", tool.Name),
	}, &command, survey.WithValidator(survey.Required)); err != nil {
		return tool, fmt.Errorf("canceled")
	}
	fields := strings.Fields(command)
	tool.Command = fields[0]
	tool.Args = fields[1:]

	var fixArgs string
	if err := survey.AskOne(&survey.Input{
		Message: "Extra args for fix mode (e.g. --fix)",
	}, &fixArgs); err != nil {
		return tool, fmt.Errorf("canceled")
	}
	tool.FixArgs = strings.Fields(fixArgs)

	var checkArgs string
	if err := survey.AskOne(&survey.Input{
		Message: "Extra args for check mode (e.g. --check)",
	}, &checkArgs); err != nil {
		return tool, fmt.Errorf("canceled")
	}
	tool.CheckArgs = strings.Fields(checkArgs)

	return tool, nil
}

// promptIdentity asks for the bot commit identity.
func promptIdentity(cfg *config.Config) error {
	if err := survey.AskOne(&survey.Input{
		Message: "Bot name for automated commits",
		Default: cfg.Bot.Name,
	}, &cfg.Bot.Name); err != nil {
		return fmt.Errorf("canceled")
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Bot email for automated commits",
		Default: cfg.Bot.Email,
	}, &cfg.Bot.Email); err != nil {
		return fmt.Errorf("canceled")
	}

	return nil
}
