package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/mcpi/internal/montecarlo"
)

const sparkWidth = 40

type repetitionMsg struct {
	index    int
	worker   int
	estimate float64
}

type doneMsg struct {
	result *montecarlo.Result
	err    error
}

// Feed forwards repetitions from driver workers to the live view. Its
// buffer holds every repetition of the run so workers never block on it.
type Feed struct {
	ch chan repetitionMsg
}

func NewFeed(repeat int) *Feed {
	return &Feed{ch: make(chan repetitionMsg, repeat)}
}

func (f *Feed) OnRepetition(index, worker int, estimate float64) {
	f.ch <- repetitionMsg{index: index, worker: worker, estimate: estimate}
}

func (f *Feed) wait() tea.Cmd {
	return func() tea.Msg {
		return <-f.ch
	}
}

// RunFunc runs the estimation the live view follows.
type RunFunc func(ctx context.Context) (*montecarlo.Result, error)

// LiveModel shows progress and the running mean while a run executes.
type LiveModel struct {
	cfg       montecarlo.Config
	generator string
	feed      *Feed
	run       RunFunc
	ctx       context.Context
	cancel    context.CancelFunc

	done      int
	sum       float64
	recent    []float64
	perWorker map[int]int
	start     time.Time

	result *montecarlo.Result
	err    error
}

// NewLiveModel follows run under a context derived from parent, so
// cancelling parent also stops the run.
func NewLiveModel(parent context.Context, cfg montecarlo.Config, generator string, feed *Feed, run RunFunc) LiveModel {
	ctx, cancel := context.WithCancel(parent)
	return LiveModel{
		cfg:       cfg,
		generator: generator,
		feed:      feed,
		run:       run,
		ctx:       ctx,
		cancel:    cancel,
		perWorker: make(map[int]int),
		start:     time.Now(),
	}
}

func (m LiveModel) Init() tea.Cmd {
	run, ctx := m.run, m.ctx
	return tea.Batch(m.feed.wait(), func() tea.Msg {
		res, err := run(ctx)
		return doneMsg{result: res, err: err}
	})
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			m.err = context.Canceled
			return m, tea.Quit
		}
	case repetitionMsg:
		m.done++
		m.sum += msg.estimate
		m.perWorker[msg.worker]++
		m.recent = append(m.recent, msg.estimate)
		if len(m.recent) > sparkWidth {
			m.recent = m.recent[1:]
		}
		if m.done < m.cfg.Repeat {
			return m, m.feed.wait()
		}
	case doneMsg:
		m.result, m.err = msg.result, msg.err
		if m.result != nil {
			m.done = len(m.result.Estimates)
			m.sum = m.result.Mean * float64(m.done)
		}
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

func (m LiveModel) View() string {
	var b strings.Builder

	b.WriteString(Title.Render("Monte Carlo π"))
	b.WriteString("\n\n")

	progress := 0.0
	if m.cfg.Repeat > 0 {
		progress = float64(m.done) / float64(m.cfg.Repeat)
	}
	b.WriteString(ProgressBar(progress, sparkWidth))
	b.WriteString(fmt.Sprintf(" %d/%d\n\n", m.done, m.cfg.Repeat))

	b.WriteString(row("workers", fmt.Sprintf("%d (%d active)", m.cfg.Threads, len(m.perWorker))) + "\n")
	b.WriteString(row("samples", fmt.Sprintf("%d per repetition", m.cfg.Samples)) + "\n")
	b.WriteString(row("generator", m.generator) + "\n")
	b.WriteString(row("elapsed", time.Since(m.start).Round(time.Millisecond).String()) + "\n")

	if m.done > 0 {
		mean := m.sum / float64(m.done)
		b.WriteString(row("mean", fmt.Sprintf("%.10f", mean)) + "\n")
		b.WriteString(row("error", fmt.Sprintf("%.3e", math.Abs(mean-math.Pi))) + "\n")
	}
	b.WriteString("\n" + Sparkline(m.recent, sparkWidth) + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(StatusFailed.Render(m.err.Error()))
	case m.result != nil:
		b.WriteString(StatusRunning.Render("done"))
	default:
		b.WriteString(StatusRunning.Render("running"))
	}
	b.WriteString("\n" + KeyHint.Render("q: quit"))

	return GlassPanel.Render(b.String())
}

// Result is the finished run, or the error that stopped it.
func (m LiveModel) Result() (*montecarlo.Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return nil, context.Canceled
	}
	return m.result, nil
}
