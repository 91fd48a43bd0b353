package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-search/internal/model"
)

// TaskRow is a compact row of the downloads panel
type TaskRow struct {
	widget.BaseWidget

	task         model.DownloadTask
	localization *Localization

	titleLabel  *widget.Label
	modeLabel   *widget.Label
	statusLabel *widget.Label
	etaLabel    *widget.Label
	progress    *widget.ProgressBar

	stopBtn   *widget.Button
	revealBtn *widget.Button

	onStop   func(taskID string)
	onReveal func(filePath string)
}

// NewTaskRow creates an empty row; list templates fill it with UpdateTask
func NewTaskRow(localization *Localization) *TaskRow {
	tr := &TaskRow{localization: localization}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	return tr
}

// SetCallbacks sets the action callbacks
func (tr *TaskRow) SetCallbacks(onStop func(taskID string), onReveal func(filePath string)) {
	tr.onStop = onStop
	tr.onReveal = onReveal
}

// UpdateTask shows task in the row
func (tr *TaskRow) UpdateTask(task *model.DownloadTask) {
	if task == nil {
		return
	}
	tr.task = *task
	tr.updateFromTask()
}

func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.modeLabel = widget.NewLabel("")
	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing
	tr.etaLabel = widget.NewLabel("")
	tr.etaLabel.TextStyle = fyne.TextStyle{Monospace: true}

	tr.progress = widget.NewProgressBar()
	tr.progress.TextFormatter = func() string {
		return fmt.Sprintf(ProgressLabelFormat, int(tr.progress.Value*100))
	}

	tr.stopBtn = widget.NewButton(IconStop, func() {
		if tr.onStop != nil && tr.task.ID != "" {
			tr.onStop(tr.task.ID)
		}
	})
	tr.stopBtn.Importance = widget.LowImportance

	tr.revealBtn = widget.NewButton(IconFolder, func() {
		if tr.onReveal != nil && tr.task.OutputPath != "" {
			tr.onReveal(tr.task.OutputPath)
		}
	})
	tr.revealBtn.Importance = widget.LowImportance
}

func (tr *TaskRow) updateFromTask() {
	title := strings.Join(strings.Fields(tr.task.GetDisplayTitle()), " ")
	tr.titleLabel.SetText(title)
	tr.modeLabel.SetText(string(tr.task.Mode))

	status := tr.task.Status.String()
	switch tr.task.Status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
		status = IconError + " " + status
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
	case model.TaskStatusDownloading:
		tr.statusLabel.Importance = widget.HighImportance
		status = IconPlay + " " + status
	case model.TaskStatusPending:
		tr.statusLabel.Importance = widget.MediumImportance
		status = IconPending + " " + status
	case model.TaskStatusStopped:
		tr.statusLabel.Importance = widget.MediumImportance
		status = IconStop + " " + status
	default:
		tr.statusLabel.Importance = widget.MediumImportance
	}
	tr.statusLabel.SetText(status)

	percent := min(max(tr.task.Percent, 0), 100)
	if tr.task.Status == model.TaskStatusCompleted {
		percent = 100
	}
	tr.progress.SetValue(float64(percent) / 100)

	switch tr.task.Status {
	case model.TaskStatusDownloading:
		tr.etaLabel.SetText(tr.task.GetETAString())
	case model.TaskStatusError:
		tr.etaLabel.SetText(tr.task.LastError)
	default:
		tr.etaLabel.SetText("")
	}

	if tr.task.Status == model.TaskStatusPending || tr.task.Status.IsActive() {
		tr.stopBtn.Enable()
	} else {
		tr.stopBtn.Disable()
	}
	if tr.task.OutputPath != "" {
		tr.revealBtn.Enable()
	} else {
		tr.revealBtn.Disable()
	}
}

// CreateRenderer lays the row out as title line over a progress line
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	top := container.NewBorder(nil, nil, nil, container.NewHBox(tr.modeLabel, tr.statusLabel), tr.titleLabel)
	bottom := container.NewBorder(nil, nil, nil, container.NewHBox(tr.etaLabel, tr.stopBtn, tr.revealBtn), tr.progress)
	return widget.NewSimpleRenderer(container.NewVBox(top, bottom))
}
