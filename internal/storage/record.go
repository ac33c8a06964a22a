package storage

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/provial/novedades/internal/form"
	"github.com/provial/novedades/internal/model"
)

// RecordFromMessage builds the archive record of a generated message.
func RecordFromMessage(msg form.Message) (*model.ReportArchive, error) {
	snapshot, err := json.Marshal(msg.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("encoding report snapshot: %w", err)
	}
	return &model.ReportArchive{
		Variant:     string(msg.Variant),
		GeneratedAt: msg.GeneratedAt,
		Site:        msg.Snapshot.Site,
		Unit:        msg.Snapshot.Unit,
		Text:        msg.Text,
		Snapshot:    datatypes.JSON(snapshot),
	}, nil
}
