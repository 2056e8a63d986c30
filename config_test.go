package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "TEMPLATE_GLOB", "MUSIC_PATH", "RESUME_PATH", "INITIAL_VOLUME"} {
		t.Setenv(k, "")
	}

	cfg := loadConfig()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "templates/*", cfg.TemplateGlob)
	require.Equal(t, "static/music.mp3", cfg.MusicPath)
	require.Equal(t, "static/resume.pdf", cfg.ResumePath)
	require.Equal(t, 0.5, cfg.InitialVolume)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MUSIC_PATH", "/srv/theme.wav")

	tests := []struct {
		raw  string
		want float64
	}{
		{"0.25", 0.25},
		{"1.5", 1},
		{"-3", 0},
		{"abc", 0.5},
		{"NaN", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("INITIAL_VOLUME", tt.raw)
			cfg := loadConfig()
			require.Equal(t, "9000", cfg.Port)
			require.Equal(t, "/srv/theme.wav", cfg.MusicPath)
			require.Equal(t, tt.want, cfg.InitialVolume)
		})
	}
}

func TestLoadConfigLogsIgnoredVolume(t *testing.T) {
	for _, raw := range []string{"NaN", "loud"} {
		buf := captureLog(t)
		t.Setenv("INITIAL_VOLUME", raw)
		require.Equal(t, 0.5, loadConfig().InitialVolume)
		require.Contains(t, buf.String(), "Ignoring INITIAL_VOLUME=\""+raw+"\"")
	}
}
