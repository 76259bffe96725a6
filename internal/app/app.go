// Package app wires configuration, logging and the loaded document together
// for the unawareness commands.
package app

import (
	"io"
	"log/slog"

	"unawareness/internal/config"
	apperrors "unawareness/internal/errors"
	"unawareness/internal/logging"
	"unawareness/internal/necroxml"
)

// App is everything a command needs once startup has succeeded.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Doc    *necroxml.Document
	Source string // path the document was loaded from

	logFile io.Closer
}

// Bootstrap loads configuration, opens the log file, creates the mod
// directory and loads necrodancer.xml. Any failure is terminal.
func Bootstrap(envFiles ...string) (*App, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	logger, logFile, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeIO, "open log file")
	}

	a := &App{Config: cfg, Logger: logger, logFile: logFile}
	if err := cfg.EnsureModDir(); err != nil {
		a.Close()
		return nil, err
	}
	doc, source, err := necroxml.Open(cfg.GameDir)
	if err != nil {
		logger.Error("load necrodancer.xml", "path", source, "error", err)
		a.Close()
		return nil, err
	}
	a.Doc, a.Source = doc, source
	logger.Info("loaded necrodancer.xml", "path", source, "items", len(doc.Items), "characters", len(doc.Characters))
	return a, nil
}

// Close releases the log file.
func (a *App) Close() error {
	if a.logFile == nil {
		return nil
	}
	return a.logFile.Close()
}
