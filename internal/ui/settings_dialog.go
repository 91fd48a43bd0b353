package ui

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-search/internal/config"
	"github.com/ytget/yt-search/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	downloadDirEntry *widget.Entry
	resultCountEntry *widget.Entry
	timeoutEntry     *widget.Entry
	ytdlpEntry       *widget.Entry
	playerEntry      *widget.Entry
	modeSelect       *widget.RadioGroup
	languageSelect   *widget.Select
	debugCheck       *widget.Check
}

// ShowSettingsDialog builds and shows the dialog; onSaved runs after a save
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.resultCountEntry = widget.NewEntry()
	sd.resultCountEntry.SetPlaceHolder(strconv.Itoa(config.MinResultCount) + "-" + strconv.Itoa(config.MaxResultCount))
	sd.resultCountEntry.Validator = intRangeValidator(config.MinResultCount, config.MaxResultCount)

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(strconv.Itoa(config.MinInactivityTimeout) + "-" + strconv.Itoa(config.MaxInactivityTimeout))
	sd.timeoutEntry.Validator = intRangeValidator(config.MinInactivityTimeout, config.MaxInactivityTimeout)

	sd.ytdlpEntry = widget.NewEntry()
	sd.ytdlpEntry.SetPlaceHolder(config.DefaultYtdlpPath)
	sd.playerEntry = widget.NewEntry()
	sd.playerEntry.SetPlaceHolder(config.DefaultPlayerPath)

	sd.modeSelect = widget.NewRadioGroup([]string{string(model.DownloadAudio), string(model.DownloadVideo)}, nil)
	sd.modeSelect.Horizontal = true

	codes := make([]string, 0, len(sd.settings.GetLanguageOptions()))
	for code := range sd.settings.GetLanguageOptions() {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	sd.languageSelect = widget.NewSelect(codes, nil)

	sd.debugCheck = widget.NewCheck(t(KeyDebugLogging), nil)

	form := widget.NewForm(
		widget.NewFormItem(t(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(t(KeyResultCount), sd.resultCountEntry),
		widget.NewFormItem(t(KeyInactivityTimeout), sd.timeoutEntry),
		widget.NewFormItem(t(KeyDownloadMode), sd.modeSelect),
		widget.NewFormItem(t(KeyYtdlpPath), sd.ytdlpEntry),
		widget.NewFormItem(t(KeyPlayerPath), sd.playerEntry),
		widget.NewFormItem(t(KeyLanguage), sd.languageSelect),
		widget.NewFormItem("", sd.debugCheck),
	)

	sd.dialog = dialog.NewCustomConfirm(t(KeySettings), t(KeySave), t(KeyCancel), form, sd.onSave, sd.window)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogW, SettingsDialogH))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.resultCountEntry.SetText(strconv.Itoa(sd.settings.GetResultCount()))
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetInactivityTimeout() / time.Second)))
	sd.ytdlpEntry.SetText(sd.settings.GetYtdlpPath())
	sd.playerEntry.SetText(sd.settings.GetPlayerPath())
	sd.modeSelect.SetSelected(string(sd.settings.GetDownloadMode()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
	sd.debugCheck.SetChecked(sd.settings.GetDebugLogging())
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := strings.TrimSpace(sd.downloadDirEntry.Text); dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(sd.resultCountEntry.Text)); err == nil {
		sd.settings.SetResultCount(n)
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(sd.timeoutEntry.Text)); err == nil {
		sd.settings.SetInactivityTimeout(time.Duration(secs) * time.Second)
	}
	sd.settings.SetYtdlpPath(strings.TrimSpace(sd.ytdlpEntry.Text))
	sd.settings.SetPlayerPath(strings.TrimSpace(sd.playerEntry.Text))
	if sd.modeSelect.Selected != "" {
		sd.settings.SetDownloadMode(model.ParseDownloadMode(sd.modeSelect.Selected))
	}
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}
	sd.settings.SetDebugLogging(sd.debugCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

func intRangeValidator(lo, hi int) fyne.StringValidator {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		if n < lo || n > hi {
			return strconv.ErrRange
		}
		return nil
	}
}
