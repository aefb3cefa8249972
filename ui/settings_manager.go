package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// SelectConfig describes a select-box setting.
type SelectConfig struct {
	Name         string
	Label        fyne.CanvasObject
	HelpContent  fyne.CanvasObject
	Options      []string
	InitialValue int
	NeedsRefresh bool
	ApplyFunc    func(selectedIndex int)
}

// BoolConfig describes a checkbox setting.
type BoolConfig struct {
	Name         string
	Label        fyne.CanvasObject
	HelpContent  fyne.CanvasObject
	InitialValue bool
	NeedsRefresh bool
	ApplyFunc    func(b bool)
	OnChanged    func(b bool)
}

// TextEntryConfig describes a free-text setting with optional validation.
type TextEntryConfig struct {
	Name              string
	Label             fyne.CanvasObject
	HelpContent       fyne.CanvasObject
	PlaceHolder       string
	InitialValue      string
	NeedsRefresh      bool
	Validator         fyne.StringValidator
	PostValidateCheck func(s string) error
	ApplyFunc         func(s string)
}

// SettingsManager batches setting edits behind an Apply button. Each
// changed setting registers an apply callback keyed by name; reverting
// the control to its initial value unregisters it. Settings flagged
// NeedsRefresh additionally trigger the registered refresh funcs once
// on apply.
type SettingsManager struct {
	chgPrefsCallbacks map[string]func()
	refreshFlags      map[string]bool
	refreshFuncs      []func()
	applyButton       *widget.Button
	prefsWindow       fyne.Window
}

// NewSettingsManager creates a SettingsManager bound to its window.
func NewSettingsManager(window fyne.Window) *SettingsManager {
	sm := &SettingsManager{
		chgPrefsCallbacks: make(map[string]func()),
		refreshFlags:      make(map[string]bool),
		prefsWindow:       window,
	}
	sm.applyButton = widget.NewButton("Apply Changes", sm.applyAll)
	sm.applyButton.Disable()
	return sm
}

// ApplyButton returns the Apply Changes button for layout.
func (sm *SettingsManager) ApplyButton() *widget.Button {
	return sm.applyButton
}

// RegisterRefreshFunc registers a function run once on apply when any
// applied setting was flagged NeedsRefresh.
func (sm *SettingsManager) RegisterRefreshFunc(refreshFunc func()) {
	sm.refreshFuncs = append(sm.refreshFuncs, refreshFunc)
}

func (sm *SettingsManager) applyAll() {
	sm.applyButton.Disable()

	for _, callback := range sm.chgPrefsCallbacks {
		callback()
	}
	sm.chgPrefsCallbacks = make(map[string]func())

	if len(sm.refreshFlags) > 0 {
		for _, rf := range sm.refreshFuncs {
			rf()
		}
		sm.refreshFlags = make(map[string]bool)
	}
}

func (sm *SettingsManager) markChanged(name string, needsRefresh bool, apply func()) {
	sm.chgPrefsCallbacks[name] = apply
	if needsRefresh {
		sm.refreshFlags[name] = true
	}
	sm.checkAndEnableApply()
}

func (sm *SettingsManager) markUnchanged(name string) {
	delete(sm.chgPrefsCallbacks, name)
	delete(sm.refreshFlags, name)
	sm.checkAndEnableApply()
}

func (sm *SettingsManager) checkAndEnableApply() {
	if len(sm.chgPrefsCallbacks) > 0 {
		sm.applyButton.Enable()
	} else {
		sm.applyButton.Disable()
	}
	sm.applyButton.Refresh()
}

// CreateSelectSetting adds a select-box setting to parent.
func (sm *SettingsManager) CreateSelectSetting(cfg *SelectConfig, parent *fyne.Container) {
	selectWidget := widget.NewSelect(cfg.Options, nil)
	selectWidget.SetSelectedIndex(cfg.InitialValue)

	parent.Add(newSplitRow(cfg.Label, selectWidget, 0.34))
	if cfg.HelpContent != nil {
		parent.Add(cfg.HelpContent)
	}

	selectWidget.OnChanged = func(string) {
		idx := selectWidget.SelectedIndex()
		if idx != cfg.InitialValue {
			sm.markChanged(cfg.Name, cfg.NeedsRefresh, func() {
				cfg.ApplyFunc(idx)
				cfg.InitialValue = idx
			})
		} else {
			sm.markUnchanged(cfg.Name)
		}
	}
}

// CreateBoolSetting adds a checkbox setting to parent.
func (sm *SettingsManager) CreateBoolSetting(cfg *BoolConfig, parent *fyne.Container) *widget.Check {
	check := widget.NewCheck("", nil)
	check.SetChecked(cfg.InitialValue)

	parent.Add(newSplitRow(cfg.Label, check, 0.34))
	if cfg.HelpContent != nil {
		parent.Add(cfg.HelpContent)
	}

	check.OnChanged = func(b bool) {
		if b != cfg.InitialValue {
			sm.markChanged(cfg.Name, cfg.NeedsRefresh, func() {
				cfg.ApplyFunc(b)
				cfg.InitialValue = b
			})
		} else {
			sm.markUnchanged(cfg.Name)
		}
		if cfg.OnChanged != nil {
			cfg.OnChanged(b)
		}
	}
	return check
}

// CreateTextEntrySetting adds a validated text entry setting to parent.
func (sm *SettingsManager) CreateTextEntrySetting(cfg *TextEntryConfig, parent *fyne.Container) {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(cfg.PlaceHolder)
	entry.SetText(cfg.InitialValue)
	if cfg.Validator != nil {
		entry.Validator = cfg.Validator
	}

	statusLabel := widget.NewLabel("")

	parent.Add(newSplitRow(cfg.Label, entry, 0.34))
	if cfg.HelpContent != nil {
		parent.Add(newOpposedRow(cfg.HelpContent, statusLabel))
	} else {
		parent.Add(newOpposedRow(widget.NewLabel(""), statusLabel))
	}

	entry.OnChanged = func(s string) {
		defer statusLabel.Refresh()

		if cfg.Validator != nil {
			if err := entry.Validate(); err != nil {
				statusLabel.SetText(err.Error())
				statusLabel.Importance = widget.DangerImportance
				sm.markUnchanged(cfg.Name)
				return
			}
		}
		if cfg.PostValidateCheck != nil {
			if err := cfg.PostValidateCheck(s); err != nil {
				statusLabel.SetText(err.Error())
				statusLabel.Importance = widget.DangerImportance
				sm.markUnchanged(cfg.Name)
				return
			}
		}

		if s == cfg.InitialValue {
			statusLabel.SetText("")
			sm.markUnchanged(cfg.Name)
			return
		}

		statusLabel.SetText(fmt.Sprintf("%s OK", cfg.Name))
		statusLabel.Importance = widget.SuccessImportance
		sm.markChanged(cfg.Name, cfg.NeedsRefresh, func() {
			cfg.ApplyFunc(entry.Text)
			cfg.InitialValue = entry.Text
		})
	}
}
