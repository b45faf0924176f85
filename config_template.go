package main

const configTemplate = `# {{ index .Help "model" }}
default-model: gemini-2.0-flash-exp
# {{ index .Help "quiet" }}
quiet: false
# {{ index .Help "temp" }}
temp: 1.0
# {{ index .Help "topp" }}
topp: 1.0
# {{ index .Help "fanciness" }}
fanciness: 10
# {{ index .Help "status-text" }}
status-text: Generating
# {{ index .Help "max-tokens" }}
# max-tokens: 100
# {{ index .Help "apis" }}
apis:
  google:
    base-url: https://generativelanguage.googleapis.com/v1beta
    api-key-env: GEMINI_API_KEY
    models:
      gemini-2.0-flash-exp:
        aliases: ["flash"]
      gemini-1.5-pro-latest:
        aliases: ["gemini"]
  openai:
    base-url: https://api.openai.com/v1
    api-key-env: OPENAI_API_KEY
    models:
      gpt-4o:
        aliases: ["4o"]
      gpt-4o-mini:
        aliases: ["mini"]
  anthropic:
    base-url: https://api.anthropic.com/v1
    api-key-env: ANTHROPIC_API_KEY
    models:
      claude-3-5-sonnet-latest:
        aliases: ["sonnet"]
      claude-3-5-haiku-latest:
        aliases: ["haiku"]
  cohere:
    api-key-env: COHERE_API_KEY
    models:
      command-r-plus:
        aliases: ["command"]
  azure:
    # Azure OpenAI setup: https://learn.microsoft.com/en-us/azure/cognitive-services/openai/how-to/create-resource
    base-url: https://YOUR_RESOURCE_NAME.openai.azure.com
    api-key-env: AZURE_OPENAI_KEY
    models:
      gpt-4o:
        aliases: ["az4o"]
  ollama:
    base-url: http://localhost:11434
    models:
      llama3.2:
        aliases: ["llama"]
`
