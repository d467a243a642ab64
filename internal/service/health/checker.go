package health

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"BlueBatch/internal/domain/models"
	"BlueBatch/internal/repository"
)

// Checker inspects the input/output trees and the run history and produces
// a health verdict for the monitor endpoints.
type Checker struct {
	inputPath  string
	outputPath string
	history    *repository.RunHistory
	staleAfter time.Duration
}

func NewChecker(inputPath, outputPath string, history *repository.RunHistory, staleAfter time.Duration) *Checker {
	return &Checker{
		inputPath:  inputPath,
		outputPath: outputPath,
		history:    history,
		staleAfter: staleAfter,
	}
}

// Check builds the full health report. It never returns an error; problems
// gathering a section degrade the verdict instead.
func (c *Checker) Check() models.HealthReport {
	report := models.HealthReport{
		Timestamp: time.Now().UTC(),
		Status:    models.HealthHealthy,
	}

	storage, issues := c.storageMetrics()
	report.Storage = storage
	report.Issues = append(report.Issues, issues...)

	pipeline, pipelineIssues := c.pipelineStatus()
	report.Pipeline = pipeline
	report.Issues = append(report.Issues, pipelineIssues...)

	report.Status = verdict(pipeline, report.Issues)
	return report
}

func (c *Checker) storageMetrics() (models.StorageMetrics, []string) {
	var m models.StorageMetrics
	var issues []string

	files, size, err := treeStats(c.inputPath)
	if err != nil {
		issues = append(issues, fmt.Sprintf("input path unreadable: %v", err))
	}
	m.InputFiles, m.InputSizeMB = files, size

	files, size, err = treeStats(c.outputPath)
	if err != nil {
		issues = append(issues, fmt.Sprintf("output path unreadable: %v", err))
	}
	m.OutputFiles, m.OutputSizeMB = files, size

	return m, issues
}

func (c *Checker) pipelineStatus() (*models.PipelineStatus, []string) {
	last, known, err := c.history.Last()
	if err != nil {
		return nil, []string{fmt.Sprintf("run history unreadable: %v", err)}
	}
	if last == nil {
		return nil, []string{"no recorded runs"}
	}

	status := &models.PipelineStatus{
		LastRunAt:    last.Timestamp,
		LastRunStale: time.Since(last.Timestamp) > c.staleAfter,
		LastRunOK:    !last.TimedOut && last.Succeeded == last.Total && last.Total > 0,
		KnownRuns:    known,
	}

	var issues []string
	if status.LastRunStale {
		issues = append(issues, fmt.Sprintf("last run is older than %s", c.staleAfter))
	}
	if !status.LastRunOK {
		issues = append(issues, fmt.Sprintf("last run finished with %d/%d units succeeded", last.Succeeded, last.Total))
	}
	return status, issues
}

// verdict maps pipeline state and gathered issues to an overall status.
// A failed or missing last run is critical; staleness and storage problems
// are warnings.
func verdict(pipeline *models.PipelineStatus, issues []string) models.HealthStatus {
	if pipeline == nil || !pipeline.LastRunOK {
		return models.HealthCritical
	}
	if len(issues) > 0 {
		return models.HealthWarning
	}
	return models.HealthHealthy
}

func treeStats(root string) (files int, sizeMB float64, err error) {
	var bytes int64
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// a tree that does not exist yet is empty, not broken
			if path == root && os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files++
		bytes += info.Size()
		return nil
	})
	if walkErr != nil {
		return files, float64(bytes) / (1024 * 1024), walkErr
	}
	return files, float64(bytes) / (1024 * 1024), nil
}
