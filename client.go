package main

import (
	"fmt"
	"os"

	xstrings "github.com/charmbracelet/x/exp/strings"

	"github.com/duetcli/duet/internal/anthropic"
	"github.com/duetcli/duet/internal/cohere"
	"github.com/duetcli/duet/internal/google"
	"github.com/duetcli/duet/internal/ollama"
	"github.com/duetcli/duet/internal/openai"
	"github.com/duetcli/duet/internal/proto"
)

// newClient resolves the configured model and builds the client for its API.
// It fails before any request is made if the API key is missing from the
// environment.
func newClient(cfg Config) (proto.Client, Model, error) {
	mod, ok := cfg.Models[cfg.Model]
	if !ok {
		if cfg.API == "" {
			return nil, Model{}, duetError{
				reason: fmt.Sprintf(
					"Model %s is not in the settings file.",
					stderrStyles().InlineCode.Render(cfg.Model),
				),
				err: newUserErrorf(
					"Please specify an API endpoint with %s or configure the model in the settings: %s",
					stderrStyles().InlineCode.Render("--api"),
					stderrStyles().InlineCode.Render("duet --settings"),
				),
			}
		}
		mod.Name = cfg.Model
		mod.API = cfg.API
	}
	if cfg.API != "" {
		mod.API = cfg.API
	}

	var client proto.Client
	for _, api := range cfg.APIs {
		if mod.API != api.Name {
			continue
		}
		switch mod.API {
		case "google":
			key, err := ensureKey(api, "GEMINI_API_KEY", "https://aistudio.google.com/app/apikey")
			if err != nil {
				return nil, Model{}, err
			}
			gcfg := google.DefaultConfig(key)
			if api.BaseURL != "" {
				gcfg.BaseURL = api.BaseURL
			}
			client = google.New(gcfg)
		case "anthropic":
			key, err := ensureKey(api, "ANTHROPIC_API_KEY", "https://console.anthropic.com/settings/keys")
			if err != nil {
				return nil, Model{}, err
			}
			acfg := anthropic.DefaultConfig(key)
			if api.BaseURL != "" {
				acfg.BaseURL = api.BaseURL
			}
			client = anthropic.New(acfg)
		case "cohere":
			key, err := ensureKey(api, "COHERE_API_KEY", "https://dashboard.cohere.com/api-keys")
			if err != nil {
				return nil, Model{}, err
			}
			ccfg := cohere.DefaultConfig(key)
			if api.BaseURL != "" {
				ccfg.BaseURL = api.BaseURL
			}
			client = cohere.New(ccfg)
		case "ollama":
			ocfg := ollama.DefaultConfig()
			if api.BaseURL != "" {
				ocfg.BaseURL = api.BaseURL
			}
			oc, err := ollama.New(ocfg)
			if err != nil {
				return nil, Model{}, duetError{err, "Could not configure the Ollama API."}
			}
			client = oc
		case "azure":
			key, err := ensureKey(api, "AZURE_OPENAI_KEY", "https://learn.microsoft.com/en-us/azure/cognitive-services/openai/how-to/create-resource")
			if err != nil {
				return nil, Model{}, err
			}
			occfg := openai.DefaultConfig(key)
			occfg.APIType = "azure"
			if api.BaseURL != "" {
				occfg.BaseURL = api.BaseURL
			}
			client = openai.New(occfg)
		default:
			key, err := ensureKey(api, "OPENAI_API_KEY", "https://platform.openai.com/account/api-keys")
			if err != nil {
				return nil, Model{}, err
			}
			occfg := openai.DefaultConfig(key)
			if api.BaseURL != "" {
				occfg.BaseURL = api.BaseURL
			}
			client = openai.New(occfg)
		}
		break
	}

	if client == nil {
		eps := make([]string, 0, len(cfg.APIs))
		for _, api := range cfg.APIs {
			eps = append(eps, stderrStyles().InlineCode.Render(api.Name))
		}
		return nil, Model{}, duetError{
			reason: fmt.Sprintf(
				"The API endpoint %s is not configured.",
				stderrStyles().InlineCode.Render(mod.API),
			),
			err: newUserErrorf(
				"Your configured API endpoints are: %s",
				xstrings.EnglishJoin(eps, true),
			),
		}
	}

	return client, mod, nil
}

// ensureKey returns the API key for the given API, or an error telling the
// user where to set it.
func ensureKey(api API, defaultEnv, docsURL string) (string, error) {
	var key string
	if api.APIKeyEnv != "" {
		key = os.Getenv(api.APIKeyEnv)
	}
	if key == "" {
		key = os.Getenv(defaultEnv)
	}
	if key != "" {
		return key, nil
	}
	return "", duetError{
		reason: fmt.Sprintf(
			"%[1]s required; set the environment variable %[1]s or update %[2]s through %[3]s.",
			stderrStyles().InlineCode.Render(defaultEnv),
			stderrStyles().InlineCode.Render("duet.yml"),
			stderrStyles().InlineCode.Render("duet --settings"),
		),
		err: newUserErrorf("You can grab one at %s", stderrStyles().Link.Render(docsURL)),
	}
}
