package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/validation"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/sakurafall/tokei/config"
	"github.com/sakurafall/tokei/pkg/background"
	"github.com/sakurafall/tokei/util/log"
)

// weatherKeyRegexp matches an OpenWeatherMap API key, or empty to clear.
const weatherKeyRegexp = `^$|^[a-fA-F0-9]{32}$`

// coordRegexp matches a decimal latitude/longitude, or empty to clear.
const coordRegexp = `^$|^-?[0-9]{1,3}(\.[0-9]+)?$`

// hexColorRegexp matches an RRGGBB hex triplet, with or without a
// leading #, or empty for the default.
const hexColorRegexp = `^$|^#?[0-9a-fA-F]{6}$`

// proxyBaseRegexp matches an http(s) relay base URL, or empty to fetch
// images directly.
const proxyBaseRegexp = `^$|^https?://.+$`

// autoRefreshChoices maps the interval select options to seconds.
var autoRefreshChoices = []struct {
	label   string
	seconds int
}{
	{"Off", 0},
	{"Every minute", 60},
	{"Every 5 minutes", 300},
	{"Every 15 minutes", 900},
	{"Every 30 minutes", 1800},
	{"Every hour", 3600},
}

// CreatePreferencesWindow creates and displays the preferences window.
func (ta *App) CreatePreferencesWindow() {
	prefsWindow := ta.app.NewWindow(fmt.Sprintf("%s Preferences", config.AppName))
	prefsWindow.Resize(fyne.NewSize(settingsWindowWidth, settingsWindowHeight))
	prefsWindow.CenterOnScreen()

	sm := NewSettingsManager(prefsWindow)
	sm.RegisterRefreshFunc(ta.RefreshNow)

	content := container.NewVBox()
	ta.addImageSettings(sm, content)
	ta.addClockSettings(sm, content)
	ta.addWidgetSettings(sm, content)

	closeButton := widget.NewButton("Close", func() {
		prefsWindow.Close()
	})
	footer := container.NewHBox(layout.NewSpacer(), sm.ApplyButton(), closeButton)

	prefsWindow.SetContent(container.NewBorder(nil, footer, nil, nil, container.NewVScroll(content)))
	prefsWindow.Show()
}

func (ta *App) addImageSettings(sm *SettingsManager, content *fyne.Container) {
	content.Add(createSectionTitleLabel("Background Image"))
	content.Add(createSettingDescriptionLabel("Where backgrounds come from and how they fill the screen."))

	sources := sourceOptions()
	current := ta.prefs.StringWithFallback(SourcePrefKey, string(background.DefaultSource))
	sm.CreateSelectSetting(&SelectConfig{
		Name:         "Image Source",
		Label:        createSettingTitleLabel("Image Source:"),
		HelpContent:  createSettingDescriptionLabel("Random draws from the enabled providers below on every refresh."),
		Options:      sources,
		InitialValue: indexOf(sources, current),
		NeedsRefresh: true,
		ApplyFunc: func(i int) {
			ta.prefs.SetString(SourcePrefKey, sources[i])
		},
	}, content)

	content.Add(widget.NewSeparator())
	content.Add(createSettingTitleLabel("Providers for Random:"))
	enabled := ta.prefs.StringListWithFallback(EnabledSourcesPrefKey, allSourceTags())
	for _, tag := range allSourceTags() {
		tag := tag
		sm.CreateBoolSetting(&BoolConfig{
			Name:         "Provider " + tag,
			Label:        createSettingDescriptionLabel(tag),
			InitialValue: contains(enabled, tag),
			NeedsRefresh: true,
			ApplyFunc: func(b bool) {
				ta.setSourceEnabled(tag, b)
			},
		}, content)
	}

	content.Add(widget.NewSeparator())
	sm.CreateBoolSetting(&BoolConfig{
		Name:         "Allow NSFW",
		Label:        createSettingTitleLabel("Allow NSFW:"),
		HelpContent:  createSettingDescriptionLabel("Providers that support it will include not-safe-for-work images."),
		InitialValue: ta.prefs.BoolWithFallback(AllowNSFWPrefKey, false),
		NeedsRefresh: true,
		ApplyFunc: func(b bool) {
			ta.prefs.SetBool(AllowNSFWPrefKey, b)
		},
	}, content)

	fitModes := []string{string(background.FitCover), string(background.FitContain)}
	sm.CreateSelectSetting(&SelectConfig{
		Name:         "Fit Mode",
		Label:        createSettingTitleLabel("Fit Mode:"),
		HelpContent:  createSettingDescriptionLabel("Cover crops to fill the screen; contain letterboxes the full image."),
		Options:      fitModes,
		InitialValue: indexOf(fitModes, ta.prefs.StringWithFallback(FitModePrefKey, string(background.FitCover))),
		NeedsRefresh: true,
		ApplyFunc: func(i int) {
			ta.prefs.SetString(FitModePrefKey, fitModes[i])
		},
	}, content)

	letterboxModes := []string{
		string(background.LetterboxBlur),
		string(background.LetterboxEdgeColor),
		string(background.LetterboxSolid),
		string(background.LetterboxCustom),
	}
	sm.CreateSelectSetting(&SelectConfig{
		Name:         "Letterbox Fill",
		Label:        createSettingTitleLabel("Letterbox Fill:"),
		HelpContent:  createSettingDescriptionLabel("How the bars around a contained image are filled."),
		Options:      letterboxModes,
		InitialValue: indexOf(letterboxModes, ta.prefs.StringWithFallback(LetterboxPrefKey, string(background.LetterboxBlur))),
		NeedsRefresh: true,
		ApplyFunc: func(i int) {
			ta.prefs.SetString(LetterboxPrefKey, letterboxModes[i])
		},
	}, content)

	sm.CreateTextEntrySetting(&TextEntryConfig{
		Name:         "Letterbox Color",
		Label:        createSettingTitleLabel("Letterbox Color:"),
		HelpContent:  createSettingDescriptionLabel("Bar color for the custom letterbox fill, as an RRGGBB hex value."),
		PlaceHolder:  "e.g. #1a1a2e",
		InitialValue: ta.prefs.StringWithFallback(LetterboxColorPrefKey, ""),
		Validator:    validation.NewRegexp(hexColorRegexp, "Color must be a 6-digit hex value"),
		NeedsRefresh: true,
		ApplyFunc: func(s string) {
			ta.prefs.SetString(LetterboxColorPrefKey, s)
		},
	}, content)

	sm.CreateTextEntrySetting(&TextEntryConfig{
		Name:         "Image Proxy",
		Label:        createSettingTitleLabel("Image Proxy:"),
		HelpContent:  createSettingDescriptionLabel("Optional relay for hotlink-protected providers. The image URL is appended to this base, e.g. https://relay.example/?u="),
		PlaceHolder:  "https://relay.example/?u=",
		InitialValue: ta.prefs.StringWithFallback(ProxyBasePrefKey, ""),
		Validator:    validation.NewRegexp(proxyBaseRegexp, "Proxy base must be an http(s) URL"),
		NeedsRefresh: true,
		ApplyFunc: func(s string) {
			ta.prefs.SetString(ProxyBasePrefKey, s)
			ta.proxy.SetBase(s)
		},
	}, content)

	refreshOptions := make([]string, len(autoRefreshChoices))
	initialRefresh := 0
	currentSec := ta.prefs.IntWithFallback(AutoRefreshSecPrefKey, defaultAutoRefreshSec)
	for i, c := range autoRefreshChoices {
		refreshOptions[i] = c.label
		if c.seconds == currentSec {
			initialRefresh = i
		}
	}
	sm.CreateSelectSetting(&SelectConfig{
		Name:         "Auto Refresh",
		Label:        createSettingTitleLabel("Auto Refresh:"),
		HelpContent:  createSettingDescriptionLabel("How often a new background is fetched automatically."),
		Options:      refreshOptions,
		InitialValue: initialRefresh,
		ApplyFunc: func(i int) {
			sec := autoRefreshChoices[i].seconds
			ta.prefs.SetInt(AutoRefreshSecPrefKey, sec)
			ta.auto.SetInterval(sec)
		},
	}, content)
}

func (ta *App) addClockSettings(sm *SettingsManager, content *fyne.Container) {
	content.Add(widget.NewSeparator())
	content.Add(createSectionTitleLabel("Clock"))

	sm.CreateBoolSetting(&BoolConfig{
		Name:         "24 Hour Clock",
		Label:        createSettingTitleLabel("24-hour time:"),
		InitialValue: ta.prefs.BoolWithFallback(Use24HourPrefKey, true),
		ApplyFunc: func(b bool) {
			ta.prefs.SetBool(Use24HourPrefKey, b)
		},
	}, content)

	sm.CreateBoolSetting(&BoolConfig{
		Name:         "Show Seconds",
		Label:        createSettingTitleLabel("Show seconds:"),
		InitialValue: ta.prefs.BoolWithFallback(ShowSecondsPrefKey, false),
		ApplyFunc: func(b bool) {
			ta.prefs.SetBool(ShowSecondsPrefKey, b)
		},
	}, content)
}

func (ta *App) addWidgetSettings(sm *SettingsManager, content *fyne.Container) {
	content.Add(widget.NewSeparator())
	content.Add(createSectionTitleLabel("Widgets"))
	content.Add(createSettingDescriptionLabel("Weather needs an OpenWeatherMap API key and your coordinates. The key is stored in the system keyring, never in plain files."))

	sm.CreateTextEntrySetting(&TextEntryConfig{
		Name:         "Weather API Key",
		Label:        createSettingTitleLabel("Weather API Key:"),
		PlaceHolder:  "OpenWeatherMap API key",
		InitialValue: config.GetWeatherAPIKey(),
		Validator:    validation.NewRegexp(weatherKeyRegexp, "OpenWeatherMap API keys are 32 hex characters"),
		ApplyFunc: func(s string) {
			if err := config.SetWeatherAPIKey(s); err != nil {
				log.Printf("Failed to store weather API key: %v", err)
				return
			}
			ta.refreshWidgets()
		},
	}, content)

	sm.CreateTextEntrySetting(&TextEntryConfig{
		Name:         "Latitude",
		Label:        createSettingTitleLabel("Latitude:"),
		PlaceHolder:  "e.g. 35.6764",
		InitialValue: ta.prefs.StringWithFallback(WeatherLatPrefKey, ""),
		Validator:    validation.NewRegexp(coordRegexp, "Latitude must be a decimal number"),
		ApplyFunc: func(s string) {
			ta.prefs.SetString(WeatherLatPrefKey, s)
			ta.applyCoords()
		},
	}, content)

	sm.CreateTextEntrySetting(&TextEntryConfig{
		Name:         "Longitude",
		Label:        createSettingTitleLabel("Longitude:"),
		PlaceHolder:  "e.g. 139.6500",
		InitialValue: ta.prefs.StringWithFallback(WeatherLonPrefKey, ""),
		Validator:    validation.NewRegexp(coordRegexp, "Longitude must be a decimal number"),
		ApplyFunc: func(s string) {
			ta.prefs.SetString(WeatherLonPrefKey, s)
			ta.applyCoords()
		},
	}, content)
}

// setSourceEnabled toggles one provider in the enabled-for-random set.
func (ta *App) setSourceEnabled(tag string, on bool) {
	enabled := ta.prefs.StringListWithFallback(EnabledSourcesPrefKey, allSourceTags())
	out := make([]string, 0, len(enabled)+1)
	for _, s := range enabled {
		if s != tag {
			out = append(out, s)
		}
	}
	if on {
		out = append(out, tag)
	}
	ta.prefs.SetStringList(EnabledSourcesPrefKey, out)
}

// sourceOptions lists every selectable source: real providers plus the
// meta-sources.
func sourceOptions() []string {
	opts := allSourceTags()
	return append(opts, string(background.SourceRandom), string(background.SourceFallback))
}

func allSourceTags() []string {
	regs := background.RegisteredSources()
	tags := make([]string, 0, len(regs))
	for _, s := range regs {
		tags = append(tags, string(s))
	}
	return tags
}

func indexOf(options []string, value string) int {
	for i, o := range options {
		if o == value {
			return i
		}
	}
	return 0
}

func contains(list []string, value string) bool {
	for _, s := range list {
		if s == value {
			return true
		}
	}
	return false
}
