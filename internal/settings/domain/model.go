package domain

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Theme selects one of the two fixed document palettes.
type Theme string

const (
	ThemeLight Theme = "Light"
	ThemeDark  Theme = "Dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// ParseTheme accepts the canonical names case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}
	return "", ErrInvalidTheme
}

// FontChoice is the typeface family offered for branding.
type FontChoice string

const (
	FontHelvetica FontChoice = "Helvetica"
	FontTimes     FontChoice = "Times-Roman"
	FontCourier   FontChoice = "Courier"
)

var FontChoices = []FontChoice{FontHelvetica, FontTimes, FontCourier}

func (f FontChoice) Valid() bool {
	for _, c := range FontChoices {
		if f == c {
			return true
		}
	}
	return false
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Preset is a named bundle of branding choices.
type Preset struct {
	Name       string     `json:"name"`
	BrandColor string     `json:"brand_color"`
	FontChoice FontChoice `json:"font_choice"`
	Logo       *string    `json:"logo"` // base64 image, null when absent
	PDFTheme   Theme      `json:"pdf_theme"`
}

// Validate checks the enumerated fields of a preset.
func (p Preset) Validate() error {
	if !hexColor.MatchString(p.BrandColor) {
		return ErrInvalidPreset
	}
	if !p.FontChoice.Valid() {
		return ErrInvalidPreset
	}
	if !p.PDFTheme.Valid() {
		return ErrInvalidPreset
	}
	return nil
}

// DefaultBranding is used when no preset is selected.
func DefaultBranding() Preset {
	return Preset{
		Name:       "AI Consultant Pro",
		BrandColor: "#1E3A8A",
		FontChoice: FontHelvetica,
		Logo:       nil,
		PDFTheme:   ThemeLight,
	}
}

// Presets maps preset name to preset.
type Presets map[string]Preset

const (
	DefaultOverrideExpiryHours = 24
	MinOverrideExpiryHours     = 1
	MaxOverrideExpiryHours     = 72
)

// Override is a temporary replacement password for a static account.
type Override struct {
	Password  string    `json:"password"`
	Timestamp Timestamp `json:"timestamp"`
}

// Age returns how long ago the override was set.
func (o Override) Age(now time.Time) time.Duration {
	return now.Sub(o.Timestamp.Time)
}

// Expired reports whether the override is older than threshold. An override
// exactly threshold old is still valid.
func (o Override) Expired(now time.Time, threshold time.Duration) bool {
	return o.Age(now) > threshold
}

// Remaining returns the time left before expiry, never negative.
func (o Override) Remaining(now time.Time, threshold time.Duration) time.Duration {
	left := threshold - o.Age(now)
	if left < 0 {
		return 0
	}
	return left
}

// AdminSettings is the singleton admin record.
type AdminSettings struct {
	ClientPDFTheme      Theme               `json:"client_pdf_theme"`
	OverrideExpiryHours int                 `json:"override_expiry_hours"`
	PasswordOverrides   map[string]Override `json:"password_overrides"`

	// DroppedOverrides lists usernames whose stored override could not be
	// decoded. They are absent from PasswordOverrides, so the next save
	// removes them from the document.
	DroppedOverrides []string `json:"-"`
}

// UnmarshalJSON decodes each override on its own so one malformed entry
// does not make the whole document unreadable.
func (s *AdminSettings) UnmarshalJSON(b []byte) error {
	type plain AdminSettings
	doc := struct {
		plain
		PasswordOverrides map[string]json.RawMessage `json:"password_overrides"`
	}{plain: plain(*s)}
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}

	*s = AdminSettings(doc.plain)
	s.DroppedOverrides = nil
	if doc.PasswordOverrides == nil {
		return nil
	}
	s.PasswordOverrides = make(map[string]Override, len(doc.PasswordOverrides))
	for username, raw := range doc.PasswordOverrides {
		var o Override
		if err := json.Unmarshal(raw, &o); err != nil {
			s.DroppedOverrides = append(s.DroppedOverrides, username)
			continue
		}
		s.PasswordOverrides[username] = o
	}
	sort.Strings(s.DroppedOverrides)
	return nil
}

// DefaultAdminSettings is returned when nothing has been persisted yet.
func DefaultAdminSettings() AdminSettings {
	return AdminSettings{
		ClientPDFTheme:      ThemeLight,
		OverrideExpiryHours: DefaultOverrideExpiryHours,
		PasswordOverrides:   map[string]Override{},
	}
}

// Normalize fills defaults for fields missing from older documents.
func (s *AdminSettings) Normalize() {
	if !s.ClientPDFTheme.Valid() {
		s.ClientPDFTheme = ThemeLight
	}
	if s.OverrideExpiryHours < MinOverrideExpiryHours || s.OverrideExpiryHours > MaxOverrideExpiryHours {
		s.OverrideExpiryHours = DefaultOverrideExpiryHours
	}
	if s.PasswordOverrides == nil {
		s.PasswordOverrides = map[string]Override{}
	}
}

// ExpiryThreshold is the maximum override age.
func (s AdminSettings) ExpiryThreshold() time.Duration {
	return time.Duration(s.OverrideExpiryHours) * time.Hour
}
