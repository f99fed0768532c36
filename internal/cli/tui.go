package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/hyperbench/pkg/bench"
)

// =============================================================================
// Batch Progress - live progress for gen/eval suites
// =============================================================================

// batchWork processes one batch item. It is called sequentially, in order.
type batchWork func(ctx context.Context, index int) (bench.InstanceResult, error)

// instanceDoneMsg reports completion of one batch item.
type instanceDoneMsg struct {
	index  int
	result bench.InstanceResult
	err    error
}

// tickMsg drives the in-progress spinner frame.
type tickMsg time.Time

// batchModel is the bubbletea model that renders live batch progress:
// one line per instance with its status, connectivity, and elapsed time.
type batchModel struct {
	title   string
	names   []string
	results []bench.InstanceResult
	errs    []error
	done    []bool
	next    int // index of the item currently running
	frame   int
	aborted bool
}

func newBatchModel(title string, names []string) *batchModel {
	return &batchModel{
		title:   title,
		names:   names,
		results: make([]bench.InstanceResult, len(names)),
		errs:    make([]error, len(names)),
		done:    make([]bool, len(names)),
	}
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *batchModel) Init() tea.Cmd {
	return tick()
}

func (m *batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case tickMsg:
		m.frame++
		return m, tick()
	case instanceDoneMsg:
		m.results[msg.index] = msg.result
		m.errs[msg.index] = msg.err
		m.done[msg.index] = true
		m.next = msg.index + 1
		if m.next >= len(m.names) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *batchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q abort"))
	b.WriteString("\n\n")

	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	for i, name := range m.names {
		switch {
		case m.done[i] && m.errs[i] != nil:
			b.WriteString(fmt.Sprintf("  %s %-28s %s\n",
				styleIconError.Render(iconError), name, StyleWarning.Render(m.errs[i].Error())))
		case m.done[i]:
			r := m.results[i]
			feasibility := StyleSuccess.Render("feasible")
			if !r.Feasible {
				feasibility = StyleWarning.Render("infeasible")
			}
			b.WriteString(fmt.Sprintf("  %s %-28s km1=%s  %s  %s\n",
				styleIconSuccess.Render(iconSuccess), name,
				StyleNumber.Render(fmt.Sprintf("%d", r.Connectivity)),
				StyleDim.Render(fmt.Sprintf("%.3fs", r.ElapsedSecs)),
				feasibility))
		case i == m.next:
			b.WriteString(fmt.Sprintf("  %s %s\n",
				styleIconSpinner.Render(frames[m.frame%len(frames)]), StyleValue.Render(name)))
		default:
			b.WriteString(fmt.Sprintf("    %s\n", StyleDim.Render(name)))
		}
	}

	b.WriteString("\n")
	completed := 0
	for _, d := range m.done {
		if d {
			completed++
		}
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", completed, len(m.names))))
	b.WriteString("\n")

	return b.String()
}

// runBatch processes the named items sequentially, rendering live progress
// with bubbletea unless plain is set (then each completion is logged instead).
// It returns per-item results; failed items are reported in errs and excluded
// from results by the callers.
func runBatch(ctx context.Context, title string, names []string, work batchWork, plain bool) ([]bench.InstanceResult, []error, error) {
	if plain {
		results := make([]bench.InstanceResult, len(names))
		errs := make([]error, len(names))
		for i := range names {
			if err := ctx.Err(); err != nil {
				return results, errs, err
			}
			results[i], errs[i] = work(ctx, i)
			if errs[i] != nil {
				printError("%s: %v", names[i], errs[i])
			} else {
				r := results[i]
				printInfo("%s  km1=%d  %.3fs", names[i], r.Connectivity, r.ElapsedSecs)
			}
		}
		return results, errs, nil
	}

	batchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newBatchModel(title, names)
	p := tea.NewProgram(model, tea.WithContext(batchCtx))

	go func() {
		for i := range names {
			result, err := work(batchCtx, i)
			p.Send(instanceDoneMsg{index: i, result: result, err: err})
			if batchCtx.Err() != nil {
				return
			}
		}
	}()

	final, err := p.Run()
	m, _ := final.(*batchModel)
	if m == nil {
		return nil, nil, err
	}
	if m.aborted || ctx.Err() != nil {
		cancel()
		return m.results, m.errs, context.Canceled
	}
	if err != nil {
		return nil, nil, err
	}
	return m.results, m.errs, nil
}
