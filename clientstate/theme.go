package clientstate

// themeKey is the storage entry holding the last-chosen UI theme.
const themeKey = "theme"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme remembers the UI theme across sessions.
type Theme struct {
	storage Storage
	mode    string
}

func NewTheme(storage Storage) *Theme {
	t := &Theme{storage: storage, mode: ThemeLight}
	if mode, ok := storage.Get(themeKey); ok && (mode == ThemeLight || mode == ThemeDark) {
		t.mode = mode
	}
	return t
}

func (t *Theme) Mode() string {
	return t.mode
}

func (t *Theme) Set(mode string) {
	if mode != ThemeLight && mode != ThemeDark {
		return
	}
	t.mode = mode
	t.storage.Set(themeKey, mode)
}

// Toggle flips between light and dark and returns the new mode.
func (t *Theme) Toggle() string {
	if t.mode == ThemeLight {
		t.Set(ThemeDark)
	} else {
		t.Set(ThemeLight)
	}
	return t.mode
}
