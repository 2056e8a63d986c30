package main

import (
	"log"
	"os"
	"strconv"

	"github.com/Archna-29/portfolio/internal/player"
)

type Config struct {
	Port          string
	TemplateGlob  string
	MusicPath     string
	ResumePath    string
	InitialVolume float64
}

// loadConfig reads settings from the environment (.env is loaded by
// godotenv/autoload) and fills in development defaults.
func loadConfig() Config {
	cfg := Config{
		Port:          os.Getenv("PORT"),
		TemplateGlob:  os.Getenv("TEMPLATE_GLOB"),
		MusicPath:     os.Getenv("MUSIC_PATH"),
		ResumePath:    os.Getenv("RESUME_PATH"),
		InitialVolume: player.DefaultVolume,
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.TemplateGlob == "" {
		cfg.TemplateGlob = "templates/*"
	}
	if cfg.MusicPath == "" {
		cfg.MusicPath = "static/music.mp3"
	}
	if cfg.ResumePath == "" {
		cfg.ResumePath = "static/resume.pdf"
	}

	if raw := os.Getenv("INITIAL_VOLUME"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Printf("Ignoring INITIAL_VOLUME=%q: %v", raw, err)
		} else if clamped, ok := player.ClampVolume(v); ok {
			cfg.InitialVolume = clamped
		} else {
			log.Printf("Ignoring INITIAL_VOLUME=%q: not a number", raw)
		}
	}

	return cfg
}
