package config

import "strings"

// AppVersion is the version of the application, stamped at build time.
var AppVersion string

// AppName is the name of the application.
const AppName = "Tokei"

// AppID is the Fyne application identifier.
const AppID = "com.sakurafall.tokei"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// UserAgent identifies the app to the public image and widget APIs.
var UserAgent = AppName + "/" + versionOrDev()

func versionOrDev() string {
	if AppVersion == "" {
		return "dev"
	}
	return AppVersion
}
