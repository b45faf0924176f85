package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/editor"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

// Build vars.
var (
	//nolint: gochecknoglobals
	version = "dev"
	commit  = ""
	date    = ""
)

var config Config //nolint: gochecknoglobals

func buildVersion() string {
	result := "duet version " + version
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	return result
}

var rootCmd = &cobra.Command{
	Use:           "duet [input]",
	Short:         "Two prompts on the command line. One answer.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(_ *cobra.Command, args []string) error {
		if config.Version {
			fmt.Println(buildVersion())
			return nil
		}
		if config.Settings {
			return openSettings()
		}
		if config.ResetSettings {
			return resetSettings()
		}

		var input string
		if len(args) > 0 {
			input = args[0]
		}

		client, mod, err := newClient(config)
		if err != nil {
			return err
		}

		opts := []tea.ProgramOption{
			tea.WithOutput(stderrRenderer().Output()),
		}
		if !isInputTTY() {
			opts = append(opts, tea.WithInput(nil))
		}
		if config.Quiet || !isErrTTY() {
			opts = append(opts, tea.WithoutRenderer())
		}

		p := tea.NewProgram(newDuet(stderrRenderer(), config, client, mod, input), opts...)
		m, err := p.Run()
		if err != nil {
			return duetError{err, "Couldn't start the Bubble Tea program."}
		}

		duet, ok := m.(*Duet)
		if !ok {
			return duetError{errors.New("unexpected model"), "Could not read the program state."}
		}
		if duet.Error != nil {
			if config.Quiet || !isErrTTY() {
				// The renderer was off, so the error view was never shown.
				fmt.Fprint(os.Stderr, duet.ErrorView())
			}
			return errSilent
		}

		fmt.Println(duet.Result.summary())

		if config.CopyToClipboard {
			if err := clipboard.WriteAll(duet.Result.combined()); err != nil {
				return duetError{err, "Could not copy the answer to the clipboard."}
			}
		}
		return nil
	},
}

var manCmd = &cobra.Command{
	Use:    "man",
	Args:   cobra.NoArgs,
	Short:  "Generates man pages",
	Hidden: true,
	RunE: func(*cobra.Command, []string) error {
		manPage, err := mcobra.NewManPage(1, rootCmd) //nolint:gomnd
		if err != nil {
			return fmt.Errorf("could not generate man page: %w", err)
		}
		fmt.Println(manPage.Build(roff.NewDocument()))
		return nil
	},
}

// errSilent is returned when the error was already reported through the
// error view.
var errSilent = errors.New("silent error")

func init() {
	rootCmd.SetUsageFunc(usageFunc)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newFlagParseError(err)
	})
	rootCmd.AddCommand(manCmd)
}

func initFlags() {
	flags := rootCmd.Flags()
	flags.StringVarP(&config.Model, "model", "m", config.Model, help["model"])
	flags.StringVarP(&config.API, "api", "a", config.API, help["api"])
	flags.BoolVarP(&config.Quiet, "quiet", "q", config.Quiet, help["quiet"])
	flags.BoolVarP(&config.CopyToClipboard, "copy", "c", config.CopyToClipboard, help["copy"])
	flags.Int64Var(&config.MaxTokens, "max-tokens", config.MaxTokens, help["max-tokens"])
	flags.Float64Var(&config.Temperature, "temp", config.Temperature, help["temp"])
	flags.Float64Var(&config.TopP, "topp", config.TopP, help["topp"])
	flags.UintVar(&config.Fanciness, "fanciness", config.Fanciness, help["fanciness"])
	flags.StringVar(&config.StatusText, "status-text", config.StatusText, help["status-text"])
	flags.Var(newDurationFlag(config.Timeout, &config.Timeout), "timeout", help["timeout"])
	flags.BoolVar(&config.Settings, "settings", false, help["settings"])
	flags.BoolVar(&config.ResetSettings, "reset-settings", false, help["reset-settings"])
	flags.BoolVarP(&config.ShowHelp, "help", "h", false, help["help"])
	flags.BoolVarP(&config.Version, "version", "v", false, help["version"])
	flags.SortFlags = false
}

func openSettings() error {
	c, err := editor.Cmd("duet", config.SettingsPath)
	if err != nil {
		return duetError{err, "Could not edit your settings file."}
	}
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return duetError{err, "Could not edit your settings file."}
	}

	fmt.Fprintln(
		os.Stderr,
		"Wrote config file to:",
		stderrStyles().InlineCode.Render(config.SettingsPath),
	)
	return nil
}

func resetSettings() error {
	if isInputTTY() && isOutputTTY() {
		var confirm bool
		if err := huh.NewConfirm().
			Title("Reset settings?").
			Description("Your old settings will be backed up first.").
			Value(&confirm).
			Run(); err != nil {
			return duetError{err, "Could not confirm the reset."}
		}
		if !confirm {
			return nil
		}
	}

	_, err := os.Stat(config.SettingsPath)
	if err != nil {
		return duetError{err, "Could not read the settings file."}
	}
	inputFile, err := os.Open(config.SettingsPath)
	if err != nil {
		return duetError{err, "Could not open the settings file."}
	}
	defer inputFile.Close() //nolint:errcheck
	outputFile, err := os.Create(config.SettingsPath + ".bak")
	if err != nil {
		return duetError{err, "Could not backup the settings file."}
	}
	defer outputFile.Close() //nolint:errcheck
	if _, err := io.Copy(outputFile, inputFile); err != nil {
		return duetError{err, "Could not write the backup file."}
	}
	if err := os.Remove(config.SettingsPath); err != nil {
		return duetError{err, "Could not remove the old settings file."}
	}
	if err := writeConfigFile(config.SettingsPath); err != nil {
		return duetError{err, "Could not write the new settings file."}
	}
	fmt.Fprintln(os.Stderr, "Settings restored to defaults!")
	fmt.Fprintln(
		os.Stderr,
		"Your old settings have been saved to:",
		stderrStyles().InlineCode.Render(config.SettingsPath+".bak"),
	)
	return nil
}

func handleError(err error) {
	if errors.Is(err, errSilent) {
		return
	}

	format := "\n%s\n\n"
	var args []any

	var fpe flagParseError
	var de duetError
	switch {
	case errors.As(err, &fpe):
		format += "%s\n\n"
		args = []any{
			fmt.Sprintf(fpe.ReasonFormat(), stderrStyles().InlineCode.Render(fpe.Flag())),
			fmt.Sprintf(
				"Check out %s %s",
				stderrStyles().InlineCode.Render("duet -h"),
				stderrStyles().Comment.Render("for help."),
			),
		}
	case errors.As(err, &de):
		format += "%s\n\n"
		args = []any{
			stderrStyles().ErrPadding.Render(stderrStyles().ErrorHeader.String(), de.reason),
			stderrStyles().ErrPadding.Render(stderrStyles().ErrorDetails.Render(err.Error())),
		}
	default:
		args = []any{
			stderrStyles().ErrPadding.Render(stderrStyles().ErrorDetails.Render(err.Error())),
		}
	}

	fmt.Fprintf(os.Stderr, format, args...)
}

func main() {
	if err := loadDotEnv(); err != nil && !isCompletionCmd(os.Args) && !isManCmd(os.Args) {
		handleError(duetError{err, "Could not load the .env file."})
		os.Exit(1)
	}

	var err error
	config, err = ensureConfig()
	if err != nil && !isCompletionCmd(os.Args) && !isManCmd(os.Args) {
		handleError(duetError{err, "Could not load your configuration file."})
		os.Exit(1)
	}
	initFlags()

	if err := rootCmd.Execute(); err != nil {
		handleError(err)
		os.Exit(1)
	}
}

func isCompletionCmd(args []string) bool {
	if len(args) < 2 {
		return false
	}
	if args[1] == "__complete" {
		return true
	}
	if args[1] != "completion" {
		return false
	}

	validShells := []string{"bash", "zsh", "fish", "powershell", "help"}
	isHelpFlag := func(s string) bool {
		return s == "-h" || s == "--help"
	}

	switch len(args) {
	case 3: //nolint:gomnd
		return slices.Contains(validShells, args[2]) || isHelpFlag(args[2])
	case 4: //nolint:gomnd
		return slices.Contains(validShells, args[2]) && isHelpFlag(args[3])
	default:
		return false
	}
}

func isManCmd(args []string) bool {
	if len(args) < 2 {
		return false
	}
	if args[1] != "man" {
		return false
	}
	switch len(args) {
	case 2: //nolint:gomnd
		return true
	case 3: //nolint:gomnd
		return args[2] == "-h" || args[2] == "--help"
	default:
		return false
	}
}
