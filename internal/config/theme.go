package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"vidgrab/internal/dirs"
	"vidgrab/internal/model"
)

const keyTheme = "theme"

// ThemeStore persists the colour scheme in state.json. It uses its own
// Viper instance so the preference never mixes with user configuration.
type ThemeStore struct {
	path string
	v    *viper.Viper
}

// NewThemeStore returns a store backed by dir/state.json.
func NewThemeStore(dir string) *ThemeStore {
	p := filepath.Join(dir, "state.json")
	v := viper.New()
	v.SetConfigFile(p)
	v.SetConfigType("json")
	v.SetDefault(keyTheme, string(model.DefaultTheme))
	return &ThemeStore{path: p, v: v}
}

// DefaultThemeStore uses the per-user state directory.
func DefaultThemeStore() (*ThemeStore, error) {
	d, err := dirs.StateDir()
	if err != nil {
		return nil, err
	}
	return NewThemeStore(d), nil
}

// Load returns the persisted theme. A missing or unreadable file yields
// the default theme.
func (s *ThemeStore) Load() model.Theme {
	_ = s.v.ReadInConfig()
	return model.ParseTheme(s.v.GetString(keyTheme))
}

// Save writes t to state.json.
func (s *ThemeStore) Save(t model.Theme) error {
	if err := dirs.Ensure(filepath.Dir(s.path)); err != nil {
		return err
	}
	s.v.Set(keyTheme, string(t))
	return s.v.WriteConfigAs(s.path)
}

// Path returns the backing file.
func (s *ThemeStore) Path() string { return s.path }
