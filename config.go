package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var help = map[string]string{
	"api":            "API to use (google, openai, anthropic, cohere, azure, ollama).",
	"apis":           "Aliases and endpoints for the supported APIs.",
	"model":          "Default model (gemini-2.0-flash-exp, gpt-4o, claude-3-5-sonnet-latest...).",
	"max-tokens":     "Maximum number of tokens in each response.",
	"temp":           "Temperature (randomness) of results, from 0.0 to 2.0.",
	"topp":           "TopP, an alternative to temperature that narrows response, from 0.0 to 1.0.",
	"fanciness":      "Your desired level of fanciness.",
	"status-text":    "Text to show while the tasks are running.",
	"timeout":        "Give up on the run after this duration.",
	"quiet":          "Quiet mode (hide the spinner while waiting).",
	"copy":           "Copy the combined answer to the clipboard.",
	"settings":       "Open settings in your $EDITOR.",
	"reset-settings": "Backup your old settings file and reset everything to the defaults.",
	"help":           "Show help and exit.",
	"version":        "Show version and exit.",
}

// Model represents the LLM model used in the API call.
type Model struct {
	Name    string
	API     string
	Aliases []string `yaml:"aliases"`
}

// API represents an API endpoint and its models.
type API struct {
	Name      string
	APIKeyEnv string           `yaml:"api-key-env"`
	BaseURL   string           `yaml:"base-url"`
	Models    map[string]Model `yaml:"models"`
}

// APIs is a type alias to allow custom YAML decoding.
type APIs []API

// UnmarshalYAML implements sorted API YAML decoding.
func (apis *APIs) UnmarshalYAML(node *yaml.Node) error {
	for i := 0; i < len(node.Content); i += 2 {
		var api API
		if err := node.Content[i+1].Decode(&api); err != nil {
			return fmt.Errorf("error decoding YAML file: %s", err)
		}
		api.Name = node.Content[i].Value
		*apis = append(*apis, api)
	}
	return nil
}

// Config holds the main configuration and is mapped to the YAML settings file.
type Config struct {
	Model       string  `yaml:"default-model" env:"MODEL"`
	Quiet       bool    `yaml:"quiet" env:"QUIET"`
	MaxTokens   int64   `yaml:"max-tokens" env:"MAX_TOKENS"`
	Temperature float64 `yaml:"temp" env:"TEMP"`
	TopP        float64 `yaml:"topp" env:"TOPP"`
	Fanciness   uint    `yaml:"fanciness" env:"FANCINESS"`
	StatusText  string  `yaml:"status-text" env:"STATUS_TEXT"`
	APIs        APIs    `yaml:"apis"`
	API         string
	Models      map[string]Model
	Timeout     time.Duration `env:"TIMEOUT"`

	CopyToClipboard bool
	ShowHelp        bool
	ResetSettings   bool
	Version         bool
	Settings        bool
	SettingsPath    string
}

// loadDotEnv loads a .env file from the current directory, if there is one.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not load .env: %w", err)
	}
	return nil
}

func ensureConfig() (Config, error) {
	var c Config
	sp, err := xdg.ConfigFile(filepath.Join("duet", "duet.yml"))
	if err != nil {
		return c, duetError{err, "Could not find settings path."}
	}
	c.SettingsPath = sp

	dir := filepath.Dir(sp)
	if dirErr := os.MkdirAll(dir, 0o700); dirErr != nil { //nolint:gomnd
		return c, duetError{dirErr, "Could not create settings directory."}
	}

	if dirErr := writeConfigFile(sp); dirErr != nil {
		return c, dirErr
	}
	content, err := os.ReadFile(sp)
	if err != nil {
		return c, duetError{err, "Could not read settings file."}
	}
	if err := yaml.Unmarshal(content, &c); err != nil {
		return c, duetError{err, "Could not parse settings file."}
	}
	ms := make(map[string]Model)
	for _, api := range c.APIs {
		for mk, mv := range api.Models {
			mv.Name = mk
			mv.API = api.Name
			// only set the model key and aliases if they haven't already been used
			_, ok := ms[mk]
			if !ok {
				ms[mk] = mv
			}
			for _, a := range mv.Aliases {
				_, ok := ms[a]
				if !ok {
					ms[a] = mv
				}
			}
		}
	}
	c.Models = ms

	if err := env.ParseWithOptions(&c, env.Options{Prefix: "DUET_"}); err != nil {
		return c, duetError{err, "Could not parse environment into settings file."}
	}

	return c, nil
}

func writeConfigFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return createConfigFile(path)
	} else if err != nil {
		return duetError{err, "Could not stat path."}
	}
	return nil
}

func createConfigFile(path string) error {
	tmpl := template.Must(template.New("config").Parse(configTemplate))

	var c Config
	f, err := os.Create(path)
	if err != nil {
		return duetError{err, "Could not create configuration file."}
	}
	defer func() { _ = f.Close() }()

	m := struct {
		Config Config
		Help   map[string]string
	}{
		Config: c,
		Help:   help,
	}
	if err := tmpl.Execute(f, m); err != nil {
		return duetError{err, "Could not render template."}
	}
	return nil
}

func useLine() string {
	appName := filepath.Base(os.Args[0])

	if stdoutRenderer().ColorProfile() == termenv.TrueColor {
		appName = makeGradientText(stdoutStyles().AppName, appName)
	}

	return fmt.Sprintf(
		"%s %s",
		appName,
		stdoutStyles().CliArgs.Render("[OPTIONS] [INPUT]"),
	)
}

func usageFunc(cmd *cobra.Command) error {
	fmt.Printf("Two prompts on the command line. One answer. Built for pipelines.\n\n")
	fmt.Printf(
		"Usage:\n  %s\n\n",
		useLine(),
	)
	fmt.Println("Options:")
	cmd.Flags().VisitAll(func(f *flag.Flag) {
		if f.Shorthand == "" {
			fmt.Printf(
				"  %-44s %s\n",
				stdoutStyles().Flag.Render("--"+f.Name),
				stdoutStyles().FlagDesc.Render(f.Usage),
			)
		} else {
			fmt.Printf(
				"  %s%s %-40s %s\n",
				stdoutStyles().Flag.Render("-"+f.Shorthand),
				stdoutStyles().FlagComma,
				stdoutStyles().Flag.Render("--"+f.Name),
				stdoutStyles().FlagDesc.Render(f.Usage),
			)
		}
	})
	desc, example := randomExample()
	fmt.Printf(
		"\nExample:\n  %s\n  %s\n",
		stdoutStyles().Comment.Render("# "+desc),
		cheapHighlighting(stdoutStyles(), example),
	)

	return nil
}
