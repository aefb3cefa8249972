package config

import "github.com/zalando/go-keyring"

// Secret names stored in the system keyring under the app's service name.
const (
	weatherAPIKeySecret = "weather_api_key"
)

// GetWeatherAPIKey retrieves the OpenWeatherMap API key from the system keyring.
// Returns an empty string if no key has been stored.
func GetWeatherAPIKey() string {
	key, err := keyring.Get(AppName, weatherAPIKeySecret)
	if err != nil {
		return ""
	}
	return key
}

// SetWeatherAPIKey stores the OpenWeatherMap API key in the system keyring.
// An empty key deletes the stored secret.
func SetWeatherAPIKey(key string) error {
	if key == "" {
		err := keyring.Delete(AppName, weatherAPIKeySecret)
		if err == keyring.ErrNotFound {
			return nil
		}
		return err
	}
	return keyring.Set(AppName, weatherAPIKeySecret, key)
}
