package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-search/internal/config"
	"github.com/ytget/yt-search/internal/download"
	"github.com/ytget/yt-search/internal/model"
	"github.com/ytget/yt-search/internal/platform"
	"github.com/ytget/yt-search/internal/search"
)

// ShutdownGrace bounds how long closing the window waits for a running search to stop
const ShutdownGrace = 3 * time.Second

// Services are the backends the window drives
type Services struct {
	Downloads download.Downloader
	Opener    *platform.Opener
	Playlists *platform.PlaylistLister
}

// RootUI represents the main UI structure
type RootUI struct {
	ctx          context.Context
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	supervisor   *search.Supervisor
	services     Services

	results    *ResultsModel
	selectedID string
	tasks      []*model.DownloadTask

	queryEntry  *widget.Entry
	searchBtn   *widget.Button
	table       *widget.Table
	statusLabel *widget.Label
	taskList    *widget.List
	actions     []*widget.Button
}

// NewRootUI creates and initializes the main UI. ctx bounds every search and
// playlist listing started from the window.
func NewRootUI(ctx context.Context, window fyne.Window, settings *config.Settings, services Services) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		ctx:          ctx,
		window:       window,
		settings:     settings,
		localization: localization,
		services:     services,
		results:      NewResultsModel(),
	}

	ui.supervisor = search.NewSupervisor(NewMainThreadSink(ui.onSearchEvent), search.Options{
		ToolPath:          settings.GetYtdlpPath(),
		ResultCount:       settings.GetResultCount(),
		InactivityTimeout: settings.GetInactivityTimeout(),
	})

	ui.applyDownloadSettings()
	ui.services.Downloads.SetUpdateCallback(ui.onTaskUpdate)

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	return ui
}

// Supervisor returns the search supervisor owned by the window
func (ui *RootUI) Supervisor() *search.Supervisor {
	return ui.supervisor
}

// Shutdown stops a running search and waits for it to wind down
func (ui *RootUI) Shutdown() {
	sess := ui.supervisor.Current()
	if sess == nil {
		return
	}
	sess.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
	defer cancel()
	if err := sess.Wait(ctx); err != nil {
		log.Warn().Str("op", "ui/shutdown").Err(err).Msgf("Session %s did not stop in time", sess.ID)
	}
}

func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.queryEntry = widget.NewEntry()
	ui.queryEntry.SetPlaceHolder(ui.localization.GetText(KeyQueryPlaceholder))
	ui.queryEntry.OnSubmitted = func(string) {
		if !ui.results.Busy() {
			ui.onSearchClick()
		}
	}

	ui.searchBtn = widget.NewButton(ui.localization.GetText(KeySearch), ui.onSearchClick)
	ui.searchBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, settingsBtn, ui.searchBtn, ui.queryEntry)

	ui.createTable()
	actionBar := ui.createActionBar()

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	ui.taskList = widget.NewList(
		func() int { return len(ui.tasks) },
		func() fyne.CanvasObject {
			row := NewTaskRow(ui.localization)
			row.SetCallbacks(ui.onStopTask, ui.onRevealFile)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(ui.tasks) {
				obj.(*TaskRow).UpdateTask(ui.tasks[id])
			}
		},
	)

	downloadsPanel := container.NewBorder(
		widget.NewLabelWithStyle(ui.localization.GetText(KeyDownloads), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		ui.taskList,
	)

	split := container.NewVSplit(ui.table, downloadsPanel)
	split.SetOffset(0.72)

	content := container.NewBorder(
		topPanel,
		container.NewVBox(actionBar, ui.statusLabel),
		nil,
		nil,
		split,
	)

	ui.window.SetContent(content)
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	ui.updateActions()

	log.Debug().Str("op", "ui/setup").Msg("UI setup completed")
}

func (ui *RootUI) createTable() {
	ui.table = widget.NewTableWithHeaders(
		func() (int, int) { return ui.results.Len(), len(Columns) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			ui.updateCell(id, obj.(*widget.Label))
		},
	)
	ui.table.ShowHeaderColumn = false
	ui.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("", nil)
	}
	ui.table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		btn := obj.(*widget.Button)
		if id.Row >= 0 || id.Col < 0 || id.Col >= len(Columns) {
			return
		}
		col := Columns[id.Col]
		btn.SetText(ui.headerText(col))
		btn.OnTapped = func() { ui.onSortClick(col) }
	}
	ui.table.OnSelected = func(id widget.TableCellID) {
		if r, ok := ui.results.At(id.Row); ok {
			ui.selectedID = r.ID
		}
		ui.updateActions()
	}

	for i, width := range []float32{TitleColumnWidth, UploaderColumnWidth, ViewsColumnWidth, DateColumnWidth} {
		ui.table.SetColumnWidth(i, width)
	}
}

func (ui *RootUI) updateCell(id widget.TableCellID, label *widget.Label) {
	r, ok := ui.results.At(id.Row)
	if !ok || id.Col < 0 || id.Col >= len(Columns) {
		label.SetText("")
		return
	}

	label.Alignment = fyne.TextAlignLeading
	switch Columns[id.Col] {
	case SortByTitle:
		label.SetText(r.GetDisplayTitle())
	case SortByUploader:
		label.SetText(r.Uploader)
	case SortByViews:
		label.Alignment = fyne.TextAlignTrailing
		label.SetText(r.FormattedViews())
	case SortByDate:
		label.SetText(r.FormattedDate())
	}
}

func (ui *RootUI) headerText(col SortColumn) string {
	var key string
	switch col {
	case SortByTitle:
		key = KeyColumnTitle
	case SortByUploader:
		key = KeyColumnUploader
	case SortByViews:
		key = KeyColumnViews
	default:
		key = KeyColumnDate
	}

	text := ui.localization.GetText(key)
	if s := ui.results.Sort(); s.Column == col {
		if s.Descending {
			return text + " " + IconSortDown
		}
		return text + " " + IconSortUp
	}
	return text
}

func (ui *RootUI) createActionBar() fyne.CanvasObject {
	t := ui.localization.GetText
	play := widget.NewButton(t(KeyPlay), func() { ui.onPlay(false) })
	playAudio := widget.NewButton(t(KeyPlayAudio), func() { ui.onPlay(true) })
	dlAudio := widget.NewButton(t(KeyDownloadAudio), func() { ui.onDownload(model.DownloadAudio) })
	dlVideo := widget.NewButton(t(KeyDownloadVideo), func() { ui.onDownload(model.DownloadVideo) })
	browser := widget.NewButton(t(KeyOpenInBrowser), ui.onOpenInBrowser)
	ui.actions = []*widget.Button{play, playAudio, dlAudio, dlVideo, browser}

	// the preferred mode gets the accent
	if ui.settings.GetDownloadMode() == model.DownloadVideo {
		dlVideo.Importance = widget.HighImportance
	} else {
		dlAudio.Importance = widget.HighImportance
	}

	folder := widget.NewButton(IconFolder+" "+t(KeyOpenFolder), ui.onOpenFolder)

	return container.NewHBox(play, playAudio, widget.NewSeparator(), dlAudio, dlVideo, widget.NewSeparator(), browser, folder)
}

func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		item := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		item.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	// widgets keep their texts, so rebuild the window
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.setupUI()
	ui.reloadTasks()
	ui.refreshSearchState()
}

// onSearchClick starts a search, or stops the running one
func (ui *RootUI) onSearchClick() {
	if ui.results.Busy() || ui.supervisor.Running() {
		log.Debug().Str("op", "ui/search").Msg("Stop requested")
		ui.supervisor.CancelCurrent()
		return
	}

	query := strings.TrimSpace(ui.queryEntry.Text)
	if query == "" {
		ui.setStatus(ui.localization.GetText(KeyEnterQuery))
		return
	}

	if isPlaylistURL(query) {
		ui.loadPlaylist(query)
		return
	}

	ui.applySearchSettings()
	ui.searchBtn.Disable()
	ui.setStatus(ui.localization.GetText(KeySearching))

	go func() {
		_, err := ui.supervisor.Start(ui.ctx, query)
		fyne.Do(func() {
			ui.searchBtn.Enable()
			switch {
			case err == nil, errors.Is(err, search.ErrLaunchFailed):
				// the session published its own status
			case errors.Is(err, search.ErrAlreadyRunning):
				log.Debug().Str("op", "ui/search").Msg("Search already running")
			default:
				ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyErrorFormat), err))
			}
		})
	}()
}

// onSearchEvent runs on the main goroutine for every supervisor event
func (ui *RootUI) onSearchEvent(ev model.Event) {
	newSession := ev.SessionID != ui.results.SessionID()
	if !ui.results.Apply(ev) {
		return
	}
	if newSession {
		ui.selectedID = ""
		ui.table.UnselectAll()
	}
	ui.refreshSearchState()
}

func (ui *RootUI) refreshSearchState() {
	ui.setStatus(StatusText(ui.localization, ui.results.Status(), ui.settings.GetInactivityTimeout()))
	if ui.results.Busy() {
		ui.searchBtn.SetText(ui.localization.GetText(KeyStop))
	} else {
		ui.searchBtn.SetText(ui.localization.GetText(KeySearch))
	}
	ui.refreshTable()
}

func (ui *RootUI) refreshTable() {
	ui.table.Refresh()
	if ui.selectedID != "" {
		if i := ui.results.IndexOf(ui.selectedID); i >= 0 {
			ui.table.Select(widget.TableCellID{Row: i, Col: 0})
		} else {
			ui.selectedID = ""
			ui.table.UnselectAll()
		}
	}
	ui.updateActions()
}

func (ui *RootUI) onSortClick(col SortColumn) {
	ui.results.ToggleSort(col)
	ui.refreshTable()
}

func (ui *RootUI) updateActions() {
	_, ok := ui.selected()
	for _, btn := range ui.actions {
		if ok {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
}

func (ui *RootUI) selected() (model.SearchResult, bool) {
	if ui.selectedID == "" {
		return model.SearchResult{}, false
	}
	return ui.results.At(ui.results.IndexOf(ui.selectedID))
}

func (ui *RootUI) setStatus(text string) {
	ui.statusLabel.SetText(text)
}

func (ui *RootUI) applySearchSettings() {
	ui.supervisor.SetToolPath(ui.settings.GetYtdlpPath())
	ui.supervisor.SetResultCount(ui.settings.GetResultCount())
	ui.supervisor.SetInactivityTimeout(ui.settings.GetInactivityTimeout())
}

func (ui *RootUI) applyDownloadSettings() {
	ui.services.Downloads.SetToolPath(ui.settings.GetYtdlpPath())
	ui.services.Downloads.SetDownloadDirectory(ui.settings.GetDownloadDirectory())
}

// isPlaylistURL tells playlist links apart from search queries
func isPlaylistURL(query string) bool {
	return strings.Contains(query, PlaylistQueryParam) &&
		(strings.HasPrefix(query, "http://") || strings.HasPrefix(query, "https://"))
}

func (ui *RootUI) loadPlaylist(rawURL string) {
	ui.setStatus(ui.localization.GetText(KeyPlaylistLoading))
	ui.searchBtn.Disable()

	go func() {
		ctx, cancel := context.WithTimeout(ui.ctx, PlaylistLoadTimeout)
		defer cancel()
		results, err := ui.services.Playlists.List(ctx, rawURL)

		fyne.Do(func() {
			ui.searchBtn.Enable()
			if err != nil {
				log.Error().Str("op", "ui/playlist").Err(err).Msgf("Could not list %s", rawURL)
				ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyErrorFormat), err))
				return
			}
			ui.selectedID = ""
			ui.table.UnselectAll()
			ui.results.SetResults(results)
			ui.refreshTable()
			ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyPlaylistLoadedFormat), len(results)))
		})
	}()
}

func (ui *RootUI) onPlay(audioOnly bool) {
	r, ok := ui.selected()
	if !ok {
		ui.setStatus(ui.localization.GetText(KeySelectVideo))
		return
	}

	player := platform.NewPlayer(ui.settings.GetPlayerPath())
	if err := player.Play(ui.ctx, r.WatchURL(), audioOnly); err != nil {
		log.Error().Str("op", "ui/play").Err(err).Msgf("Could not play %s", r.ID)
		ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyPlaybackErrorFormat), err))
		return
	}
	ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyPlayingFormat), r.GetDisplayTitle()))
}

func (ui *RootUI) onDownload(mode model.DownloadMode) {
	r, ok := ui.selected()
	if !ok {
		ui.setStatus(ui.localization.GetText(KeySelectVideo))
		return
	}

	ui.applyDownloadSettings()
	task, err := ui.services.Downloads.AddTask(r, mode)
	if err != nil {
		if errors.Is(err, download.ErrTaskExists) {
			ui.setStatus(ui.localization.GetText(KeyAlreadyInQueue))
			return
		}
		ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyDownloadFailedFormat), err))
		return
	}

	log.Info().Str("op", "ui/download").Msgf("Queued %s download of %s as task %s", mode, r.ID, task.ID)
	ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyDownloadStartedFormat), r.GetDisplayTitle()))
	ui.reloadTasks()
}

func (ui *RootUI) onOpenInBrowser() {
	r, ok := ui.selected()
	if !ok {
		ui.setStatus(ui.localization.GetText(KeySelectVideo))
		return
	}
	if err := ui.services.Opener.OpenURL(r.WatchURL()); err != nil {
		ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyBrowserErrorFormat), err))
	}
}

func (ui *RootUI) onOpenFolder() {
	if err := ui.services.Opener.OpenFolder(ui.settings.GetDownloadDirectory()); err != nil {
		ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyFolderErrorFormat), err))
	}
}

func (ui *RootUI) onRevealFile(path string) {
	if err := ui.services.Opener.RevealFile(path); err != nil {
		ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyFolderErrorFormat), err))
	}
}

func (ui *RootUI) onStopTask(taskID string) {
	if err := ui.services.Downloads.StopTask(taskID); err != nil {
		log.Warn().Str("op", "ui/download").Err(err).Msgf("Could not stop task %s", taskID)
	}
	ui.reloadTasks()
}

// onTaskUpdate is called by the download service from its workers
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	fyne.Do(func() {
		ui.reloadTasks()

		switch task.Status {
		case model.TaskStatusCompleted:
			ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyDownloadedFormat), task.GetDisplayTitle()))
			fyne.CurrentApp().SendNotification(&fyne.Notification{
				Title:   ui.localization.GetText(KeyDownloadCompleted),
				Content: task.GetDisplayTitle(),
			})
		case model.TaskStatusError:
			ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyDownloadFailedFormat), task.LastError))
		}
	})
}

func (ui *RootUI) reloadTasks() {
	ui.tasks = ui.services.Downloads.GetAllTasks()
	ui.taskList.Refresh()
}

func (ui *RootUI) onShowSettings() {
	before := ui.settings.GetLanguage()
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.applySearchSettings()
		ui.applyDownloadSettings()
		if lang := ui.settings.GetLanguage(); lang != before {
			ui.onLanguageChange(lang)
		}
	})
}
