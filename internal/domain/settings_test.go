package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool { return &v }

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.True(t, s.Notifications)
	assert.True(t, s.LocationAlerts)
	assert.True(t, s.Sounds)
	assert.True(t, s.Vibrations)
	assert.False(t, s.DailyTips)
	assert.Equal(t, 1, s.Version)
}

func TestSettingsPatch_Empty(t *testing.T) {
	assert.True(t, SettingsPatch{}.Empty())
	assert.False(t, SettingsPatch{Sounds: boolPtr(false)}.Empty())
	assert.False(t, SettingsPatch{DailyTips: boolPtr(true)}.Empty())
}

func TestSettings_Merge(t *testing.T) {
	t.Run("partial patch keeps untouched fields", func(t *testing.T) {
		s := DefaultSettings()
		merged := s.Merge(SettingsPatch{LocationAlerts: boolPtr(false)})

		assert.False(t, merged.LocationAlerts)
		assert.True(t, merged.Notifications)
		assert.True(t, merged.Sounds)
		assert.True(t, merged.Vibrations)
		assert.False(t, merged.DailyTips)
		assert.Equal(t, 2, merged.Version)

		// исходник не мутируется
		assert.True(t, s.LocationAlerts)
		assert.Equal(t, 1, s.Version)
	})

	t.Run("full patch", func(t *testing.T) {
		merged := DefaultSettings().Merge(SettingsPatch{
			Notifications:  boolPtr(false),
			LocationAlerts: boolPtr(false),
			Sounds:         boolPtr(false),
			Vibrations:     boolPtr(false),
			DailyTips:      boolPtr(true),
		})

		assert.False(t, merged.Notifications)
		assert.False(t, merged.LocationAlerts)
		assert.False(t, merged.Sounds)
		assert.False(t, merged.Vibrations)
		assert.True(t, merged.DailyTips)
		assert.Equal(t, 2, merged.Version)
	})

	t.Run("version grows on every merge", func(t *testing.T) {
		s := DefaultSettings()
		s = s.Merge(SettingsPatch{Sounds: boolPtr(false)})
		s = s.Merge(SettingsPatch{Sounds: boolPtr(true)})
		assert.Equal(t, 3, s.Version)
	})
}
