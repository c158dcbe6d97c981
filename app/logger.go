package app

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// InitLogger applies the configured level; an unknown level falls back to info.
func InitLogger() {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(Config.Logger.Level)))
	if err != nil {
		log.Warn("[LOGGER] Unknown log level, using info: ", Config.Logger.Level)
		level = log.InfoLevel
	}

	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	log.Info("[LOGGER] Logger initialized with level: ", level.String())
}
