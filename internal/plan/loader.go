package plan

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// LoadSnapshot reads a project snapshot exported by the planning backend
// from a JSON file, normalizing child ordering on the way in
func LoadSnapshot(path string, logger *zap.Logger) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var project Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	project.Normalize()

	rollup := AggregateProject(&project)
	logger.Info("Snapshot loaded",
		zap.String("file", path),
		zap.String("project", project.Name),
		zap.Int("stages", len(project.Stages)),
		zap.Int("sections", rollup.Sections),
		zap.Float64("planned_hours", rollup.PlannedHours))

	return &project, nil
}
