package main

import (
	"math/rand"
)

var examples = map[string]string{
	"Run both prompts against the default model": `duet`,
	"Try another API":                            `duet -a openai`,
	"Copy the combined answer to the clipboard":  `duet -c "HHH"`,
	"Collect answers from a script":              `duet -q > answers.txt`,
}

func randomExample() (string, string) {
	keys := make([]string, 0, len(examples))
	for k := range examples {
		keys = append(keys, k)
	}
	desc := keys[rand.Intn(len(keys))]
	return desc, examples[desc]
}
