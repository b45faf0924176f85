package main

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/duetcli/duet/internal/proto"
)

// task is a single prompt sent to the model, named after the label it gets
// in the summary line.
type task struct {
	name   string
	prompt string
}

// chainTasks are the prompts issued on every run, in summary order.
var chainTasks = []task{
	{name: "Task 1", prompt: "What is up?"},
	{name: "Task 2", prompt: "Hello there, how are you?"},
}

type taskOutput struct {
	name    string
	content string
}

// chainResult holds the task outputs in chainTasks order, regardless of
// which request finished first.
type chainResult struct {
	outputs []taskOutput
}

// summary renders the labeled one-line report.
func (r chainResult) summary() string {
	parts := make([]string, 0, len(r.outputs))
	for _, out := range r.outputs {
		parts = append(parts, fmt.Sprintf("%s: %s", out.name, out.content))
	}
	return strings.Join(parts, ", ")
}

// combined joins the raw task outputs with single spaces.
func (r chainResult) combined() string {
	parts := make([]string, 0, len(r.outputs))
	for _, out := range r.outputs {
		parts = append(parts, out.content)
	}
	return strings.Join(parts, " ")
}

// runChain sends every task to the model and waits for all of them. Each
// task is an independent request with no shared conversation state. If any
// task fails the whole run fails and no partial result is returned.
//
// The input argument is accepted for entrypoint compatibility and reserved
// for prompt templating. It is not sent to the model.
func runChain(ctx context.Context, client proto.Client, cfg Config, mod Model, _ string) (chainResult, error) {
	result := chainResult{
		outputs: make([]taskOutput, len(chainTasks)),
	}

	var g errgroup.Group
	for i, t := range chainTasks {
		result.outputs[i].name = t.name
		g.Go(func() error {
			resp, err := client.Complete(ctx, buildRequest(cfg, mod, t.prompt))
			if err != nil {
				return duetError{err, fmt.Sprintf("There was a problem with the %s API.", mod.API)}
			}
			result.outputs[i].content = resp.Content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return chainResult{}, err //nolint:wrapcheck
	}
	return result, nil
}

func buildRequest(cfg Config, mod Model, prompt string) proto.Request {
	req := proto.Request{
		API:   mod.API,
		Model: mod.Name,
		Messages: []proto.Message{
			{Role: proto.RoleUser, Content: prompt},
		},
		Temperature: &cfg.Temperature,
		TopP:        &cfg.TopP,
	}
	if cfg.MaxTokens > 0 {
		req.MaxTokens = &cfg.MaxTokens
	}
	return req
}
