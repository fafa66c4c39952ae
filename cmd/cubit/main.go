package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/cubit/audio"
	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/config"
	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/input"
	"github.com/lixenwraith/cubit/level"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "cubit: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	log, logFile := setupLogging(cfg.Debug, cfg.LogLevel, cfg.Formatter())
	if logFile != nil {
		defer logFile.Close()
	}

	arsenal, err := config.LoadArsenal(cfg.WeaponsPath, component.DefaultArsenal())
	if err != nil {
		return err
	}

	keys, err := loadKeys(cfg.KeymapPath)
	if err != nil {
		return err
	}

	lvl, err := level.Load(cfg.LevelPath)
	if err != nil {
		log.WithError(err).WithField("path", cfg.LevelPath).Error("level load failed")
		return err
	}

	sound, err := newSound(cfg, log)
	if err != nil {
		return err
	}
	// Audio is optional; the game runs silent without a device
	if err := sound.Initialize(); err != nil {
		log.WithError(err).Warn("audio unavailable, continuing without sound")
	}
	defer sound.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	g, err := newGame(gameOptions{
		Screen:   screen,
		Level:    lvl,
		Arsenal:  arsenal,
		Keys:     keys,
		Hold:     cfg.KeyHold,
		Sound:    sound,
		Logger:   log,
		Seed:     cfg.Seed,
		MaxSteps: cfg.MaxSteps,
	})
	if err != nil {
		return err
	}

	events := make(chan tcell.Event, 100)
	core.Go(func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // Screen finalized
			}
			events <- ev
		}
	})

	log.WithFields(logrus.Fields{
		"level":   lvl.Name,
		"enemies": lvl.Enemies(),
	}).Info("game started")
	g.run(events)
	return nil
}

func loadKeys(path string) (*input.KeyTable, error) {
	keys := input.DefaultKeyTable()
	if path == "" {
		return keys, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	override, err := input.LoadKeyConfig(data)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(keys, override), nil
}

func newSound(cfg *config.Config, log logrus.FieldLogger) (*audio.Player, error) {
	acfg := audio.DefaultAudioConfig()
	acfg.Enabled = cfg.Audio
	acfg.SetMasterVolume(cfg.Volume)
	if cfg.SFXVolumes != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(cfg.SFXVolumes), &volumes); err != nil {
			return nil, fmt.Errorf("%s: %w", config.EnvSFX, err)
		}
		if err := acfg.SetEffectVolumes(volumes); err != nil {
			return nil, fmt.Errorf("%s: %w", config.EnvSFX, err)
		}
	}
	return audio.NewPlayer(acfg, log), nil
}
