package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// ErrUnsupportedReportFormat is returned for report paths with an unknown extension.
var ErrUnsupportedReportFormat = errors.New("unsupported report format (use .yaml, .yml or .json)")

// ReportStore persists scan reports.
type ReportStore interface {
	SaveReport(path m.Path, report m.Report) error
	LoadReport(path m.Path) (m.Report, error)
}

// LocalReportStore stores reports as YAML or JSON files chosen by extension.
type LocalReportStore struct{}

// NewLocalReportStore creates a file-backed ReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

type reportCodec struct {
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

func codecFor(path m.Path) (reportCodec, error) {
	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".yaml", ".yml":
		return reportCodec{marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}, nil
	case ".json":
		return reportCodec{
			marshal: func(v any) ([]byte, error) {
				return json.MarshalIndent(v, "", "  ")
			},
			unmarshal: json.Unmarshal,
		}, nil
	default:
		return reportCodec{}, fmt.Errorf("%w: %s", ErrUnsupportedReportFormat, path)
	}
}

// ValidateReportPath reports whether path has a supported extension.
func ValidateReportPath(path m.Path) error {
	_, err := codecFor(path)
	return err
}

// SaveReport writes report to path, creating parent directories.
func (s *LocalReportStore) SaveReport(path m.Path, report m.Report) error {
	codec, err := codecFor(path)
	if err != nil {
		return err
	}

	data, err := codec.marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

// LoadReport reads a report written by SaveReport.
func (s *LocalReportStore) LoadReport(path m.Path) (m.Report, error) {
	codec, err := codecFor(path)
	if err != nil {
		return m.Report{}, err
	}

	// #nosec G304 - report path is provided by the user on purpose
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Report{}, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.Report
	if err := codec.unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	if report.Version > m.CurrentReportVersion {
		return m.Report{}, fmt.Errorf("report %s has version %d, newer than supported %d",
			path, report.Version, m.CurrentReportVersion)
	}

	return report, nil
}
