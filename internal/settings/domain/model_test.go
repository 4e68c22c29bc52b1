package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideExpiry(t *testing.T) {
	setAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	o := Override{Password: "temp", Timestamp: NewTimestamp(setAt)}
	threshold := 24 * time.Hour

	t.Run("valid just before threshold", func(t *testing.T) {
		now := setAt.Add(threshold - time.Second)
		assert.False(t, o.Expired(now, threshold))
		assert.Equal(t, time.Second, o.Remaining(now, threshold))
	})

	t.Run("valid exactly at threshold", func(t *testing.T) {
		assert.False(t, o.Expired(setAt.Add(threshold), threshold))
	})

	t.Run("expired after threshold", func(t *testing.T) {
		now := setAt.Add(threshold + time.Second)
		assert.True(t, o.Expired(now, threshold))
		assert.Equal(t, time.Duration(0), o.Remaining(now, threshold))
	})
}

func TestAdminSettingsNormalize(t *testing.T) {
	s := AdminSettings{OverrideExpiryHours: 500}
	s.Normalize()

	assert.Equal(t, ThemeLight, s.ClientPDFTheme)
	assert.Equal(t, DefaultOverrideExpiryHours, s.OverrideExpiryHours)
	assert.NotNil(t, s.PasswordOverrides)
	assert.Equal(t, 24*time.Hour, s.ExpiryThreshold())
}

func TestTimestampJSON(t *testing.T) {
	t.Run("reads naive timestamps", func(t *testing.T) {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(`"2025-03-01T10:00:00.123456"`), &ts))
		assert.Equal(t, 2025, ts.Year())
		assert.Equal(t, 123456000, ts.Nanosecond())
	})

	t.Run("reads RFC 3339", func(t *testing.T) {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(`"2025-03-01T10:00:00Z"`), &ts))
		assert.True(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC).Equal(ts.Time))
	})

	t.Run("writes naive local time", func(t *testing.T) {
		b, err := json.Marshal(NewTimestamp(time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)))
		require.NoError(t, err)
		assert.Equal(t, `"2025-03-01T10:00:00"`, string(b))

		b, err = json.Marshal(NewTimestamp(time.Date(2025, 3, 1, 10, 0, 0, 120000000, time.Local)))
		require.NoError(t, err)
		assert.Equal(t, `"2025-03-01T10:00:00.120000"`, string(b))
	})

	t.Run("round trips", func(t *testing.T) {
		in := NewTimestamp(time.Date(2025, 3, 1, 10, 0, 0, 123456000, time.UTC))
		b, err := json.Marshal(in)
		require.NoError(t, err)

		var out Timestamp
		require.NoError(t, json.Unmarshal(b, &out))
		assert.True(t, in.Equal(out.Time))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var ts Timestamp
		assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	})
}

func TestPresetValidate(t *testing.T) {
	assert.NoError(t, DefaultBranding().Validate())

	p := DefaultBranding()
	p.BrandColor = "blue"
	assert.ErrorIs(t, p.Validate(), ErrInvalidPreset)

	p = DefaultBranding()
	p.FontChoice = "Comic Sans"
	assert.ErrorIs(t, p.Validate(), ErrInvalidPreset)

	theme, err := ParseTheme(" dark ")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
	_, err = ParseTheme("sepia")
	assert.ErrorIs(t, err, ErrInvalidTheme)
}

func TestAdminSettingsUnmarshal(t *testing.T) {
	t.Run("drops unreadable overrides", func(t *testing.T) {
		s := DefaultAdminSettings()
		require.NoError(t, json.Unmarshal([]byte(`{
			"client_pdf_theme": "Dark",
			"override_expiry_hours": 12,
			"password_overrides": {
				"client1": {"password": "a", "timestamp": "not-a-date"},
				"client2": {"password": "b", "timestamp": 42},
				"alierwai": {"password": "c", "timestamp": "2025-03-01T10:00:00"}
			}
		}`), &s))

		assert.Equal(t, ThemeDark, s.ClientPDFTheme)
		assert.Equal(t, 12, s.OverrideExpiryHours)
		assert.Equal(t, []string{"client1", "client2"}, s.DroppedOverrides)
		require.Len(t, s.PasswordOverrides, 1)
		assert.Equal(t, "c", s.PasswordOverrides["alierwai"].Password)
	})

	t.Run("keeps defaults for missing fields", func(t *testing.T) {
		s := DefaultAdminSettings()
		require.NoError(t, json.Unmarshal([]byte(`{"client_pdf_theme": "Dark"}`), &s))

		assert.Equal(t, DefaultOverrideExpiryHours, s.OverrideExpiryHours)
		assert.NotNil(t, s.PasswordOverrides)
		assert.Empty(t, s.DroppedOverrides)
	})

	t.Run("dropped list is not written", func(t *testing.T) {
		s := DefaultAdminSettings()
		s.DroppedOverrides = []string{"client1"}
		b, err := json.Marshal(s)
		require.NoError(t, err)
		assert.NotContains(t, string(b), "client1")
	})

	t.Run("syntax errors still fail", func(t *testing.T) {
		s := DefaultAdminSettings()
		assert.Error(t, json.Unmarshal([]byte(`{not json`), &s))
	})
}
