package snapshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ttpr0/go-transit/catalogue"
	"github.com/ttpr0/go-transit/render"
	"github.com/ttpr0/go-transit/transit"
	. "github.com/ttpr0/go-transit/util"
	"golang.org/x/exp/slog"
)

var ErrMalformedSnapshot = errors.New("malformed snapshot")
var ErrInconsistentSnapshot = errors.New("inconsistent snapshot")

type Meta struct {
	BuildID   uuid.UUID
	CreatedAt time.Time
}

func NewMeta() Meta {
	return Meta{
		BuildID:   uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
}

// Everything the query phase needs. Loading a snapshot never recomputes
// the shortest path table.
type Snapshot struct {
	Meta           Meta
	Catalogue      *catalogue.TransportCatalogue
	RenderSettings render.RenderSettings
	MapObjects     render.MapObjects
	Router         *transit.TransportRouter
}

func WriteFile(file string, snapshot Snapshot) error {
	data, err := Serialize(snapshot)
	if err != nil {
		return err
	}
	if err := WriteBytesToFile(data, file); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	slog.Info(fmt.Sprintf("snapshot %v written to %v (%v bytes)", snapshot.Meta.BuildID, file, len(data)))
	return nil
}

func ReadFile(file string) (Snapshot, error) {
	data, err := ReadBytesFromFile(file)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	snapshot, err := Deserialize(data)
	if err != nil {
		return Snapshot{}, err
	}
	slog.Info(fmt.Sprintf("snapshot %v loaded from %v", snapshot.Meta.BuildID, file))
	return snapshot, nil
}
