// Package project persists jobs, plans, application config and the material
// catalog as JSON files.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/panelcut/panelcut/internal/model"
)

// PackJob is a saved planning request: the cut list plus the sheet geometry
// and material policies it should be planned with.
type PackJob struct {
	Name      string                          `json:"name"`
	Parts     []model.Part                    `json:"parts"`
	Config    model.GlobalConfig              `json:"config"`
	Materials map[string]model.MaterialConfig `json:"materials"`
}

// NewPackJob returns an empty job with default sheet geometry.
func NewPackJob(name string) PackJob {
	return PackJob{
		Name:      name,
		Parts:     []model.Part{},
		Config:    model.DefaultGlobalConfig(),
		Materials: map[string]model.MaterialConfig{},
	}
}

// Request converts the job into an engine request.
func (j PackJob) Request() model.PackRequest {
	return model.PackRequest{
		Parts:     j.Parts,
		Config:    j.Config,
		Materials: j.Materials,
	}
}

// PlanFile is a job together with its computed result, for archiving a
// finished planning run.
type PlanFile struct {
	Job       PackJob          `json:"job"`
	Result    model.PlanResult `json:"result"`
	CreatedAt string           `json:"created_at"`
}

// SaveJob writes the job to the given path as indented JSON, creating parent
// directories as needed.
func SaveJob(path string, job PackJob) error {
	return writeJSON(path, job)
}

// LoadJob reads a job from the given JSON file.
func LoadJob(path string) (PackJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PackJob{}, err
	}
	var job PackJob
	if err := json.Unmarshal(data, &job); err != nil {
		return PackJob{}, fmt.Errorf("failed to parse job file %s: %w", path, err)
	}
	if job.Materials == nil {
		job.Materials = map[string]model.MaterialConfig{}
	}
	return job, nil
}

// SavePlan writes a finished plan to the given path with a creation stamp.
func SavePlan(path string, job PackJob, result model.PlanResult) error {
	return writeJSON(path, PlanFile{
		Job:       job,
		Result:    result,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// LoadPlan reads a previously saved plan.
func LoadPlan(path string) (PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PlanFile{}, err
	}
	var plan PlanFile
	if err := json.Unmarshal(data, &plan); err != nil {
		return PlanFile{}, fmt.Errorf("failed to parse plan file %s: %w", path, err)
	}
	return plan, nil
}

// writeJSON marshals v with indentation and writes it to path, creating
// missing parent directories.
func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
