// package ui implements the interactive library browser.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"tubevault/internal/library"
	"tubevault/internal/models"
	"tubevault/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	VideoListView
	RefreshView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	lib          *library.Library
	ownerID      string
	width        int
	height       int
	playlistList list.Model
	playlists    []*models.Playlist
	videoList    list.Model
	selected     *models.Playlist
	progressChan chan library.ProgressUpdate
	refreshDone  chan refreshCompleteMsg
	progress     library.ProgressUpdate
	result       *library.SyncResult
	err          error
	help         help.Model
	keys         keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	refresh key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.refresh, k.quit},
	}
}

// playlistItem wraps [models.Playlist] to implement list.Item.
type playlistItem struct {
	playlist *models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name() }
func (i playlistItem) Title() string       { return i.playlist.Name() }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d videos • %s", i.playlist.VideoCount(), shared.FormatDuration(i.playlist.TotalDuration()))
	if !i.playlist.Refreshable() {
		desc += " • local only"
	}
	return desc
}

// videoItem wraps [models.Video] to implement list.Item.
type videoItem struct {
	video *models.Video
}

func (i videoItem) FilterValue() string { return i.video.Title() }
func (i videoItem) Title() string       { return i.video.Title() }
func (i videoItem) Description() string {
	desc := shared.FormatDuration(i.video.Duration())
	if i.video.ChannelName() != "" {
		desc = fmt.Sprintf("%s • %s", i.video.ChannelName(), desc)
	}
	return desc
}

type libraryFetchedMsg struct {
	playlists []*models.Playlist
	err       error
}

type videosFetchedMsg struct {
	detail *library.PlaylistDetail
	err    error
}

type progressUpdateMsg library.ProgressUpdate

type refreshCompleteMsg struct {
	result *library.SyncResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, lib *library.Library, ownerID string) *Model {
	return &Model{
		ctx:     ctx,
		view:    PlaylistListView,
		lib:     lib,
		ownerID: ownerID,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by loading the owner's playlists.
func (m *Model) Init() tea.Cmd {
	return m.fetchLibrary()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.videoList.Width() == 0 {
			m.videoList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case VideoListView:
			return m.handleVideoListKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case libraryFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.playlists = msg.playlists
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case videosFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		m.selected = msg.detail.Playlist
		items := make([]list.Item, len(msg.detail.Videos))
		for i, video := range msg.detail.Videos {
			items[i] = videoItem{video: video}
		}
		m.videoList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.videoList.Title = fmt.Sprintf("Videos in '%s'", msg.detail.Playlist.Name())
		m.videoList.SetSize(m.width-4, m.height-8)
		m.view = VideoListView
		return m, nil

	case progressUpdateMsg:
		m.progress = library.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case refreshCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case VideoListView:
		return m.renderVideoList()
	case RefreshView:
		return m.renderRefresh()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if pl, ok := m.selectedPlaylist(); ok {
			return m, m.fetchVideos(pl.ID())
		}
	case "r":
		if pl, ok := m.selectedPlaylist(); ok && pl.Refreshable() {
			m.selected = pl
			m.view = RefreshView
			return m, m.startRefresh(pl.ID())
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) selectedPlaylist() (*models.Playlist, bool) {
	selected := m.playlistList.SelectedItem()
	if selected == nil {
		return nil, false
	}
	item, ok := selected.(playlistItem)
	if !ok {
		return nil, false
	}
	return item.playlist, true
}

func (m *Model) handleVideoListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PlaylistListView
		return m, nil
	case "r":
		if m.selected != nil && m.selected.Refreshable() {
			m.view = RefreshView
			return m, m.startRefresh(m.selected.ID())
		}
	}

	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.view = PlaylistListView
		m.result = nil
		m.err = nil
		return m, m.fetchLibrary()
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case VideoListView:
		m.videoList, cmd = m.videoList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchLibrary() tea.Cmd {
	return func() tea.Msg {
		view, err := m.lib.List(m.ctx, m.ownerID)
		if err != nil {
			return libraryFetchedMsg{err: err}
		}
		return libraryFetchedMsg{playlists: view.Playlists}
	}
}

func (m *Model) fetchVideos(playlistID string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.lib.PlaylistVideos(m.ctx, m.ownerID, playlistID)
		return videosFetchedMsg{detail: detail, err: err}
	}
}

func (m *Model) startRefresh(playlistID string) tea.Cmd {
	m.progressChan = make(chan library.ProgressUpdate, 50)
	progress := m.progressChan

	done := make(chan refreshCompleteMsg, 1)
	go func() {
		result, err := m.lib.RefreshPlaylist(m.ctx, progress, m.ownerID, playlistID)
		done <- refreshCompleteMsg{result: result, err: err}
		close(progress)
	}()
	m.refreshDone = done

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return nil
		}

		update, ok := <-m.progressChan
		if !ok {
			return refreshCompleteMsg(<-m.refreshDone)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderVideoList() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.videoList.View(), helpView)
}

func (m *Model) renderRefresh() string {
	title := styles.title.Render(fmt.Sprintf("Refreshing '%s'", m.selected.Name()))

	var phase string
	switch m.progress.Phase {
	case library.FetchRemote:
		phase = "Fetching remote playlist..."
	case library.SyncVideos:
		phase = fmt.Sprintf("Syncing videos (%d/%d)", m.progress.Step, m.progress.Total)
	case library.WriteSummary:
		phase = "Writing summary..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Refresh failed: %v\n\nPress esc to go back, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress esc to go back, q to quit")
	}

	title := styles.ok.Render("✓ Refresh Complete")
	info := fmt.Sprintf(
		"\nPlaylist: %s\nVideos: %d (%d new, %d reused)",
		m.result.Playlist.Name(),
		m.result.Synced,
		m.result.CreatedVideos,
		m.result.ReusedVideos,
	)

	var skipped string
	if len(m.result.Skipped) > 0 {
		skipped = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("Skipped %d entries:", len(m.result.Skipped))))
		for _, remoteID := range m.result.Skipped {
			skipped += fmt.Sprintf("\n  • %s", remoteID)
		}
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, skipped, helpView)
}
