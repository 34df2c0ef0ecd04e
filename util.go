package main

import (
	"errors"

	"github.com/ttpr0/go-transit/parser"
)

var ErrNoSnapshotFile = errors.New("no snapshot file given")

func GetDecoder() parser.IOSMDecoder {
	return &parser.BusDecoder{}
}

// The file named in the request document wins over the configured one.
func _SnapshotFile(settings SerializationSettings, config Config) (string, error) {
	if settings.File != "" {
		return settings.File, nil
	}
	if config.Serialization.File != "" {
		return config.Serialization.File, nil
	}
	return "", ErrNoSnapshotFile
}
