package tui

import (
	"context"
	"time"

	"greedometer/internal/domain"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// SnapshotGetter provides the latest Fear & Greed snapshot.
type SnapshotGetter interface {
	GetSnapshot(ctx context.Context) (*domain.Snapshot, error)
}

const fetchTimeout = 15 * time.Second

type snapshotMsg struct {
	snapshot *domain.Snapshot
}

type errMsg struct {
	err error
}

// Model is the Fear & Greed dashboard: a gauge for the composite score,
// the comparison values and one row per indicator.
type Model struct {
	index    SnapshotGetter
	spinner  spinner.Model
	snapshot *domain.Snapshot
	err      error
	loading  bool
	width    int
	height   int
}

func NewModel(index SnapshotGetter) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return &Model{
		index:   index,
		spinner: sp,
		loading: true,
		width:   80,
		height:  24,
	}
}

// SetSize adjusts the layout to the terminal dimensions. Called by the SSH
// middleware with the pty size before the program starts.
func (m *Model) SetSize(width, height int) {
	if width > 0 {
		m.width = width
	}
	if height > 0 {
		m.height = height
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
		}

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case snapshotMsg:
		m.loading = false
		m.snapshot = msg.snapshot
		m.err = nil
		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		snap, err := m.index.GetSnapshot(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return snapshotMsg{snapshot: snap}
	}
}
