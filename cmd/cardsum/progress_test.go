package main

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cardsum/internal/pricing"
)

func TestProgressModelCountsWorkers(t *testing.T) {
	var m tea.Model = newProgressModel(4)
	assert.NotNil(t, m.Init())

	m, cmd := m.Update(workerDoneMsg{Group: pricing.GroupBaseline, Worker: 0, Trials: 10})
	assert.Nil(t, cmd)
	m, _ = m.Update(workerDoneMsg{Group: pricing.GroupPerturbed, Worker: 0, Trials: 10})
	m, _ = m.Update(workerDoneMsg{Group: pricing.GroupBaseline, Worker: 1, Trials: 10})

	pm := m.(progressModel)
	assert.Equal(t, 2, pm.baseline)
	assert.Equal(t, 1, pm.perturbed)
	assert.Contains(t, pm.View(), "3/4 workers done")

	m, cmd = m.Update(workerDoneMsg{Group: pricing.GroupPerturbed, Worker: 1, Trials: 10})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, m.(progressModel).finished)
	assert.Empty(t, m.View())
}

func TestProgressModelSpinnerTick(t *testing.T) {
	m := newProgressModel(2)
	_, cmd := m.Update(spinner.TickMsg{ID: m.spinner.ID()})
	assert.NotNil(t, cmd, "spinner keeps ticking")
}
