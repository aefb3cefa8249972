package ui

import (
	"context"
	"image"
	"net/url"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"github.com/sakurafall/tokei/config"
	"github.com/sakurafall/tokei/pkg/background"
	"github.com/sakurafall/tokei/pkg/hotkey"
	"github.com/sakurafall/tokei/pkg/provider"
	tokeiwidget "github.com/sakurafall/tokei/pkg/widget"
	"github.com/sakurafall/tokei/util"
	"github.com/sakurafall/tokei/util/log"
)

// App is the desktop shell: one clock window over the background
// pipeline, a tray menu, and the preferences window.
type App struct {
	app      fyne.App
	win      fyne.Window
	prefs    fyne.Preferences
	trayMenu *fyne.Menu

	view  *backgroundView
	clock *clockOverlay

	proxy        *background.Proxy
	transitioner *background.Transitioner
	auto         *background.AutoRefresher
	widgets      *tokeiwidget.Refresher

	mu         sync.Mutex
	currentImg image.Image
	currentRec provider.ImageRecord
}

var (
	instance *App
	once     sync.Once
)

// GetInstance returns the singleton application, creating it on first
// call. Returns nil on platforms without tray support.
func GetInstance() *App {
	a := app.NewWithID(config.AppID)
	if _, ok := a.(desktop.App); !ok {
		log.Println("Tray icon not supported on this platform")
		return nil
	}
	once.Do(func() {
		instance = newApp(a)
	})
	return instance
}

func newApp(a fyne.App) *App {
	prefs := a.Preferences()
	ta := &App{app: a, prefs: prefs}

	client := background.NewHTTPClient()
	ta.proxy = background.NewProxy(prefs.StringWithFallback(ProxyBasePrefKey, ""))
	fetcher := background.NewFetcher(client, ta.proxy)
	loader := background.NewLoader(client)

	ta.view = newBackgroundView(prefs)
	ta.view.onShow = ta.handleShown
	ta.clock = newClockOverlay(prefs)

	ta.transitioner = background.NewTransitioner(fetcher, loader, ta.view, func() background.FetchConfig {
		return fetchConfigFromPrefs(prefs)
	})
	ta.transitioner.OnImageLoad = func(rec provider.ImageRecord) {
		log.Debugf("Background settled: %s (%s)", rec.URL, rec.AnimeName)
	}
	ta.transitioner.OnImageError = func(err error) {
		a.SendNotification(fyne.NewNotification(config.AppName,
			"Background refresh failed: "+err.Error()+" — pick New Background to retry"))
	}
	ta.auto = background.NewAutoRefresher(ta.RefreshNow)

	ta.widgets = tokeiwidget.NewRefresher(
		tokeiwidget.NewWeatherClient(client, config.GetWeatherAPIKey),
		tokeiwidget.NewQuoteClient(client),
	)
	ta.applyCoords()

	ta.win = a.NewWindow(config.AppName)
	ta.win.SetContent(container.NewStack(ta.view.CanvasObject(), ta.clock.CanvasObject()))
	ta.win.Resize(fyne.NewSize(defaultWindowWidth, defaultWindowHeight))
	ta.win.CenterOnScreen()
	ta.win.SetCloseIntercept(func() {
		// The clock lives in the tray; closing the window only hides it.
		ta.win.Hide()
		getOS().TransformToBackground()
	})

	ta.createTrayMenu()
	getOS().SetupLifecycle(a, ta)

	hotkey.StartListeners(hotkey.Actions{
		Refresh: ta.RefreshNow,
		Save:    ta.SaveCurrentImage,
	})

	return ta
}

// createTrayMenu builds the tray menu for the application.
func (ta *App) createTrayMenu() {
	desk := ta.app.(desktop.App)

	trayMenu := fyne.NewMenu(
		config.AppName,
		menuItem("New Background", ta.RefreshNow, theme.ViewRefreshIcon()),
		menuItem("Save Background", ta.SaveCurrentImage, theme.DocumentSaveIcon()),
		menuItem("Image Page", ta.openImagePage, theme.SearchIcon()),
		fyne.NewMenuItemSeparator(),
		menuItem("Show Clock", ta.showClock, theme.ComputerIcon()),
		menuItem("Preferences", func() {
			go ta.CreatePreferencesWindow()
		}, theme.SettingsIcon()),
		menuItem("About "+config.AppName, ta.showAbout, theme.InfoIcon()),
		fyne.NewMenuItemSeparator(),
		menuItem("Quit", ta.Quit, theme.CancelIcon()),
	)

	desk.SetSystemTrayMenu(trayMenu)
	ta.trayMenu = trayMenu
}

func menuItem(label string, action func(), icon fyne.Resource) *fyne.MenuItem {
	mi := fyne.NewMenuItem(label, action)
	mi.Icon = icon
	return mi
}

// RefreshNow fetches a new background and refreshes the widgets.
// Fire-and-forget; safe from any goroutine.
func (ta *App) RefreshNow() {
	ta.transitioner.Refresh()
	ta.refreshWidgets()
}

func (ta *App) refreshWidgets() {
	go func() {
		snap := ta.widgets.Refresh(context.Background())
		ta.clock.SetWidgets(snap)
	}()
}

// applyCoords pushes the stored coordinates into the widget refresher.
func (ta *App) applyCoords() {
	ta.widgets.Lat = coordFromPrefs(ta.prefs, WeatherLatPrefKey)
	ta.widgets.Lon = coordFromPrefs(ta.prefs, WeatherLonPrefKey)
}

// handleShown runs on the render thread after each background lands.
func (ta *App) handleShown(img image.Image, rec provider.ImageRecord) {
	ta.mu.Lock()
	ta.currentImg = img
	ta.currentRec = rec
	ta.mu.Unlock()

	edge := background.SampleEdgeColor(img, 16)
	ta.clock.SetForeground(background.ForegroundFor(edge))
}

// openImagePage opens the source page of the current background in the
// default browser, falling back to the raw image URL.
func (ta *App) openImagePage() {
	ta.mu.Lock()
	rec := ta.currentRec
	ta.mu.Unlock()

	target := rec.SourceURL
	if target == "" {
		target = rec.URL
	}
	if target == "" {
		return
	}
	u, err := url.Parse(target)
	if err != nil {
		log.Printf("Bad image page URL %q: %v", target, err)
		return
	}
	if err := ta.app.OpenURL(u); err != nil {
		log.Printf("Failed to open image page: %v", err)
	}
}

func (ta *App) showClock() {
	fyne.Do(func() {
		getOS().TransformToForeground()
		ta.win.Show()
		ta.win.RequestFocus()
	})
}

// showAbout displays a small splash with the app name and version.
func (ta *App) showAbout() {
	fyne.Do(func() {
		drv, ok := ta.app.Driver().(desktop.Driver)
		if !ok {
			return
		}
		splash := drv.CreateSplashWindow()

		title := canvas.NewText(config.AppName, theme.Color(theme.ColorNameForeground))
		title.TextSize = 48
		title.TextStyle = fyne.TextStyle{Bold: true}
		title.Alignment = fyne.TextAlignCenter

		version := canvas.NewText("Version "+versionString(), theme.Color(theme.ColorNameForeground))
		version.Alignment = fyne.TextAlignCenter

		splash.SetContent(container.NewVBox(title, version))
		splash.Resize(fyne.NewSize(300, 160))
		splash.CenterOnScreen()
		splash.Show()

		go func() {
			<-time.After(aboutSplashTime)
			fyne.Do(splash.Close)
		}()
	})
}

// checkForUpdates polls for a newer release and, when one exists,
// prepends an update item to the tray menu.
func (ta *App) checkForUpdates() {
	res, err := util.CheckForUpdates(background.NewHTTPClient())
	if err != nil {
		log.Debugf("Update check failed: %v", err)
		return
	}
	if !res.UpdateAvailable {
		log.Debugf("No update available (current %s)", res.CurrentVersion)
		return
	}

	fyne.Do(func() {
		item := menuItem(updateMenuItemPrefix+res.LatestVersion, func() {
			u, err := url.Parse(res.ReleaseURL)
			if err != nil {
				return
			}
			if err := ta.app.OpenURL(u); err != nil {
				log.Printf("Failed to open release page: %v", err)
			}
		}, theme.DownloadIcon())

		ta.trayMenu.Items = append([]*fyne.MenuItem{item, fyne.NewMenuItemSeparator()}, ta.trayMenu.Items...)
		ta.trayMenu.Refresh()
	})
}

// Run starts the clock and blocks until the app quits.
func (ta *App) Run() {
	ta.clock.Start()
	ta.auto.SetInterval(ta.prefs.IntWithFallback(AutoRefreshSecPrefKey, defaultAutoRefreshSec))
	ta.RefreshNow()
	go ta.checkForUpdates()

	ta.win.Show()
	ta.app.Run()
}

// Quit tears the pipeline down and exits.
func (ta *App) Quit() {
	ta.auto.Stop()
	ta.clock.Stop()
	ta.transitioner.Close()
	ta.app.Quit()
}

func versionString() string {
	if config.AppVersion == "" {
		return "dev"
	}
	return config.AppVersion
}
