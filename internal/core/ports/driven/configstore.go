package driven

import "github.com/studykit-labs/studykit/internal/core/domain"

// ConfigStore persists application settings.
type ConfigStore interface {
	// Load reads the persisted settings. A missing file yields defaults,
	// not an error.
	Load() (*domain.Settings, error)

	// Save persists the settings.
	Save(settings *domain.Settings) error

	// Path returns the backing file path for diagnostics.
	Path() string
}
