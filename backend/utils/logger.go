package utils

import (
	"log"
	"os"
)

// LoggerConfig controls logger output.
type LoggerConfig struct {
	Output *os.File
	Prefix string
}

func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "[CodeClub] "
	}
	return log.New(cfg.Output, cfg.Prefix, log.LstdFlags|log.LUTC)
}
