package kustomize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/raystack/salt/log"
	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/meltano/kubernetes-ext/models"
)

const (
	baseDirName     = "base"
	overlaysDirName = "overlays"

	kustomizationFileName = "kustomization.yaml"

	dirPermission  = 0o755
	filePermission = 0o644
)

// RenderSpec carries the per invocation inputs of a render run
type RenderSpec struct {
	// Destination is the absolute directory that holds the base layer and
	// the overlays
	Destination string

	// ProjectRoot guards destructive cleanup: previously generated files
	// are only cleared when the destination lies inside the project
	ProjectRoot string

	// Environment names the overlay to scaffold, empty skips scaffolding
	Environment string

	// OnlySchedules restricts rendering to the named schedules. The base
	// layer is not cleared in that case, other manifests stay in place.
	OnlySchedules []string

	// Sentinels are the reserved non-cron interval keywords
	Sentinels []string
}

// Renderer drives the full pipeline: read schedules, compile eligible ones
// into CronJob manifests, regenerate the kustomization and scaffold the
// overlay for the active environment
type Renderer struct {
	fs       afero.Fs
	logger   log.Logger
	source   models.ScheduleSource
	compiler *Compiler
	version  string
}

// NewRenderer initializes a renderer writing through the given filesystem
func NewRenderer(logger log.Logger, fs afero.Fs, source models.ScheduleSource, compiler *Compiler, version string) (*Renderer, error) {
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	if fs == nil {
		return nil, errors.New("filesystem is nil")
	}
	if source == nil {
		return nil, errors.New("schedule source is nil")
	}
	if compiler == nil {
		return nil, errors.New("compiler is nil")
	}
	return &Renderer{
		fs:       fs,
		logger:   logger,
		source:   source,
		compiler: compiler,
		version:  version,
	}, nil
}

// Render executes one render run. The base layer is regenerated fully and
// idempotently, the overlay is only ever created, never touched again.
func (r *Renderer) Render(ctx context.Context, spec RenderSpec) error {
	if spec.Destination == "" {
		return errors.New("destination is empty")
	}

	entries, err := r.source.ListSchedules(ctx)
	if err != nil {
		return err
	}
	entries = r.filterRequested(entries, spec.OnlySchedules)

	manifests, err := r.compileEligible(entries, spec.Sentinels)
	if err != nil {
		return err
	}

	baseDir := filepath.Join(spec.Destination, baseDirName)
	if err := r.fs.MkdirAll(baseDir, dirPermission); err != nil {
		return fmt.Errorf("error creating base directory: %w", err)
	}
	if len(spec.OnlySchedules) == 0 {
		if insideProject(spec.ProjectRoot, baseDir) {
			if err := r.clearGenerated(baseDir); err != nil {
				return err
			}
		} else {
			r.logger.Debug(fmt.Sprintf("%s is outside the project, keeping existing files", baseDir))
		}
	}

	for _, manifest := range manifests {
		filePath := filepath.Join(baseDir, manifest.FileName)
		r.logger.Debug(fmt.Sprintf("templating schedule %s to %s", manifest.Schedule, filePath))
		if err := r.writeYAML(filePath, manifest.CronJob); err != nil {
			return err
		}
	}

	if err := r.writeKustomization(baseDir); err != nil {
		return err
	}

	return r.scaffoldOverlay(spec.Destination, spec.Environment)
}

// filterRequested keeps only the requested schedules when a subset render
// was asked for, unknown names are reported and dropped
func (r *Renderer) filterRequested(entries []models.ScheduleEntry, requested []string) []models.ScheduleEntry {
	if len(requested) == 0 {
		return entries
	}
	known := make(map[string]models.ScheduleEntry, len(entries))
	for _, entry := range entries {
		known[entry.Name] = entry
	}
	filtered := make([]models.ScheduleEntry, 0, len(requested))
	for _, name := range requested {
		entry, ok := known[name]
		if !ok {
			r.logger.Warn(fmt.Sprintf("schedule %q was not found, skipping", name))
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

// compileEligible turns standard interval entries into manifests, reports
// skipped sentinel entries and rejects colliding resource names
func (r *Renderer) compileEligible(entries []models.ScheduleEntry, sentinels []string) ([]Manifest, error) {
	manifests := make([]Manifest, 0, len(entries))
	seen := map[string]string{}
	for _, entry := range entries {
		if entry.Classify(sentinels) == models.IntervalTypeSentinel {
			r.logger.Info(fmt.Sprintf("no CronJob will be created for schedule %q with interval %q", entry.Name, entry.Interval))
			continue
		}
		if _, err := cron.ParseStandard(entry.CronInterval); err != nil {
			// advisory only, kubernetes has the final say at apply time
			r.logger.Warn(fmt.Sprintf("schedule %q has interval %q which does not look like cron, rendering anyway", entry.Name, entry.CronInterval))
		}

		manifest := r.compiler.Compile(entry)
		if previous, ok := seen[manifest.FileName]; ok && previous != entry.Name {
			return nil, &NameCollisionError{
				ManifestName: strings.TrimSuffix(manifest.FileName, ".yaml"),
				ScheduleA:    previous,
				ScheduleB:    entry.Name,
			}
		}
		seen[manifest.FileName] = entry.Name
		manifests = append(manifests, manifest)
	}
	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].FileName < manifests[j].FileName
	})
	return manifests, nil
}

// insideProject reports whether dir lies strictly within the project root,
// matching the only case where wiping previously generated files is safe
func insideProject(projectRoot, dir string) bool {
	if projectRoot == "" {
		return false
	}
	rel, err := filepath.Rel(projectRoot, dir)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// clearGenerated removes previously generated yaml files from the base layer
// so stale manifests never survive a full render
func (r *Renderer) clearGenerated(baseDir string) error {
	infos, err := afero.ReadDir(r.fs, baseDir)
	if err != nil {
		return fmt.Errorf("error reading base directory: %w", err)
	}
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if filepath.Ext(info.Name()) != ".yaml" {
			continue
		}
		if err := r.fs.Remove(filepath.Join(baseDir, info.Name())); err != nil {
			return fmt.Errorf("error removing stale manifest: %w", err)
		}
	}
	return nil
}

// commonLabels identify every resource generated by this extension
func (r *Renderer) commonLabels() map[string]string {
	return map[string]string{
		"app.kubernetes.io/version":    r.version,
		"app.kubernetes.io/component":  "orchestrator",
		"app.kubernetes.io/part-of":    "meltano",
		"app.kubernetes.io/managed-by": "kubernetes-ext",
	}
}

func (r *Renderer) writeYAML(filePath string, doc interface{}) error {
	content, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshalling %s: %w", filepath.Base(filePath), err)
	}
	f, err := r.fs.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}
	return nil
}
