package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/ordered"

	"github.com/duetcli/duet/internal/proto"
)

type state int

const (
	startState state = iota
	chainState
	quitState
	errorState
)

// Duet is the Bubble Tea model that runs the task chain against the
// configured API and holds on to the results.
type Duet struct {
	Config Config
	Input  string
	Result chainResult
	Error  *duetError

	state  state
	client proto.Client
	model  Model
	anim   tea.Model
	styles styles
	width  int

	cancelRequest context.CancelFunc
}

func newDuet(r *lipgloss.Renderer, cfg Config, client proto.Client, mod Model, input string) *Duet {
	return &Duet{
		Config: cfg,
		Input:  input,
		client: client,
		model:  mod,
		state:  startState,
		styles: makeStyles(r),
	}
}

// chainDone is a tea.Msg that wraps the finished chain result.
type chainDone struct{ result chainResult }

// Init implements tea.Model.
func (d *Duet) Init() tea.Cmd {
	d.anim = newCyclingChars(
		d.Config.Fanciness,
		ordered.First(d.Config.StatusText, "Generating"),
		d.styles,
	)
	d.state = chainState
	return tea.Batch(d.anim.Init(), d.startChainCmd())
}

// Update implements tea.Model.
func (d *Duet) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chainDone:
		d.Result = msg.result
		d.state = quitState
		return d, tea.Quit
	case duetError:
		d.Error = &msg
		d.state = errorState
		return d, tea.Quit
	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if d.cancelRequest != nil {
				d.cancelRequest()
			}
			d.Error = &duetError{err: errors.New("canceled"), reason: "Aborted."}
			d.state = errorState
			return d, tea.Quit
		}
	}
	if d.state == chainState {
		var cmd tea.Cmd
		d.anim, cmd = d.anim.Update(msg)
		return d, cmd
	}
	return d, nil
}

// View implements tea.Model.
func (d *Duet) View() string {
	switch d.state {
	case errorState:
		return d.ErrorView()
	case chainState:
		if !d.Config.Quiet {
			return d.anim.View()
		}
	}
	return ""
}

// ErrorView renders the current error.
func (d *Duet) ErrorView() string {
	const maxWidth = 120
	const horizontalEdgePadding = 2
	w := d.width - horizontalEdgePadding*2
	if w <= 0 || w > maxWidth {
		w = maxWidth
	}
	s := d.styles
	return fmt.Sprintf(
		"\n%s\n\n%s\n\n",
		s.ErrPadding.Render(s.ErrorHeader.String(), d.Error.reason),
		s.ErrPadding.Render(s.ErrorDetails.Width(w).Render(d.Error.err.Error())),
	)
}

// startChainCmd kicks off the task chain in the background and delivers the
// result, or the error, back as a tea.Msg.
func (d *Duet) startChainCmd() tea.Cmd {
	ctx := context.Background()
	var cancel context.CancelFunc
	if d.Config.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, d.Config.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	d.cancelRequest = cancel

	return func() tea.Msg {
		defer cancel()
		result, err := runChain(ctx, d.client, d.Config, d.model, d.Input)
		if err != nil {
			var de duetError
			if errors.As(err, &de) {
				return de
			}
			return duetError{err, "There was a problem running the tasks."}
		}
		return chainDone{result}
	}
}
