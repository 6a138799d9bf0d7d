package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/organizeme/internal/suggest"
)

// fail records a store error on the status line.
func (m Model) fail(err error) Model {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.WithError(err).Error("store operation failed")
	return m
}

func waitForSuggestionsCmd(f *suggest.Fetcher) tea.Cmd {
	if f == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case res := <-f.Results():
			return SuggestionsMsg{Result: res}
		case <-f.Done():
			return nil
		}
	}
}
