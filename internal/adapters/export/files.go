package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

// WriteEngagementFiles writes <prefix>engagement.json and one
// <prefix>engagement_<table>.csv per table into dir, creating dir if needed.
// It returns the written paths in a stable order.
func WriteEngagementFiles(dir, prefix string, report *domain.EngagementReport) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	paths := make([]string, 0, 4)

	jsonPath := filepath.Join(dir, prefix+"engagement.json")
	if err := writeFile(jsonPath, func(f *os.File) error { return WriteJSON(f, report) }); err != nil {
		return paths, err
	}
	paths = append(paths, jsonPath)

	for _, table := range Tables() {
		csvPath := filepath.Join(dir, fmt.Sprintf("%sengagement_%s.csv", prefix, table))
		err := writeFile(csvPath, func(f *os.File) error { return WriteReportTable(f, report, table) })
		if err != nil {
			return paths, err
		}
		paths = append(paths, csvPath)
	}

	return paths, nil
}

func WriteWeeklyFile(dir, prefix string, report *domain.WeeklyReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, prefix+"weekly.json")
	if err := writeFile(path, func(f *os.File) error { return WriteJSON(f, report) }); err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
