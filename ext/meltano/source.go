package meltano

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/raystack/salt/log"

	"github.com/meltano/kubernetes-ext/models"
)

// ErrSourceUnavailable is returned when the schedule list could not be
// obtained from the host tool, either because the process failed or because
// its output could not be parsed. It always aborts before any file is written.
var ErrSourceUnavailable = errors.New("unable to obtain schedules from the host scheduling tool")

// CmdRunner abstracts the host CLI invocation so tests can substitute a
// fixture schedule list without spawning a process
type CmdRunner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

type execRunner struct {
	bin string
}

// NewExecRunner returns a CmdRunner backed by os/exec for the given binary
func NewExecRunner(bin string) CmdRunner {
	return &execRunner{bin: bin}
}

func (r *execRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", r.bin, strings.Join(args, " "), err, detail)
		}
		return nil, fmt.Errorf("%s %s: %w", r.bin, strings.Join(args, " "), err)
	}
	return stdout.Bytes(), nil
}

// CLISource reads schedules by invoking `<bin> schedule list --format=json`
// inside the project directory
type CLISource struct {
	runner     CmdRunner
	projectDir string
	logger     log.Logger
}

// NewCLISource initializes a schedule source backed by the host CLI
func NewCLISource(runner CmdRunner, projectDir string, logger log.Logger) (*CLISource, error) {
	if runner == nil {
		return nil, errors.New("command runner is nil")
	}
	if projectDir == "" {
		return nil, errors.New("project directory is empty")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	return &CLISource{
		runner:     runner,
		projectDir: projectDir,
		logger:     logger,
	}, nil
}

// ListSchedules implements models.ScheduleSource
func (s *CLISource) ListSchedules(ctx context.Context) ([]models.ScheduleEntry, error) {
	out, err := s.runner.Run(ctx, s.projectDir, "schedule", "list", "--format=json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	entries, err := ParseScheduleList(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	s.logger.Debug(fmt.Sprintf("found %d schedules in %s", len(entries), s.projectDir))
	return entries, nil
}

type scheduleRecord struct {
	Name         string            `json:"name"`
	Interval     string            `json:"interval"`
	CronInterval string            `json:"cron_interval"`
	Cron         string            `json:"cron"`
	Extractor    string            `json:"extractor"`
	Loader       string            `json:"loader"`
	ELTArgs      []string          `json:"elt_args"`
	Env          map[string]string `json:"env"`
	Job          *struct {
		Name string `json:"name"`
	} `json:"job"`
}

type scheduleDocument struct {
	Schedules *struct {
		ELT []scheduleRecord `json:"elt"`
		Job []scheduleRecord `json:"job"`
	} `json:"schedules"`
}

// ParseScheduleList decodes the host tool schedule listing. Both the grouped
// document form ({"schedules": {"elt": [...], "job": [...]}}) and a flat
// array of schedules are accepted.
func ParseScheduleList(raw []byte) ([]models.ScheduleEntry, error) {
	var doc scheduleDocument
	if err := json.Unmarshal(raw, &doc); err == nil && doc.Schedules != nil {
		records := append([]scheduleRecord{}, doc.Schedules.ELT...)
		records = append(records, doc.Schedules.Job...)
		return toEntries(records), nil
	}

	var records []scheduleRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("malformed schedule listing: %v", err)
	}
	return toEntries(records), nil
}

func toEntries(records []scheduleRecord) []models.ScheduleEntry {
	entries := make([]models.ScheduleEntry, 0, len(records))
	for _, record := range records {
		cronInterval := record.CronInterval
		if cronInterval == "" {
			cronInterval = record.Cron
		}
		if cronInterval == "" {
			cronInterval = record.Interval
		}
		entry := models.ScheduleEntry{
			Name:         record.Name,
			Interval:     record.Interval,
			CronInterval: cronInterval,
			Extractor:    record.Extractor,
			Loader:       record.Loader,
			ELTArgs:      record.ELTArgs,
			Environment:  record.Env["MELTANO_ENVIRONMENT"],
		}
		if record.Job != nil {
			entry.Job = record.Job.Name
		}
		entries = append(entries, entry)
	}
	return entries
}
