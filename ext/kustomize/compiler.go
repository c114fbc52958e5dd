package kustomize

import (
	"fmt"
	"hash/crc32"
	"regexp"
	"strings"

	"github.com/meltano/kubernetes-ext/models"
)

// resource names must be valid DNS-1123 labels, kubernetes caps these at 63
const maxResourceNameLength = 63

var (
	invalidNameChars = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedDashes   = regexp.MustCompile(`-{2,}`)
)

// NormalizeResourceName maps a schedule name onto a valid kubernetes
// resource name. The mapping is deterministic so the same schedule name
// always produces the same manifest file across runs.
func NormalizeResourceName(name string) string {
	normalized := strings.ToLower(name)
	normalized = invalidNameChars.ReplaceAllString(normalized, "-")
	normalized = repeatedDashes.ReplaceAllString(normalized, "-")
	normalized = strings.Trim(normalized, "-")
	if len(normalized) > maxResourceNameLength {
		normalized = normalized[:maxResourceNameLength]
		normalized = strings.TrimRight(normalized, "-")
	}
	if normalized == "" {
		// names with no usable runes still need a stable, valid resource name
		normalized = fmt.Sprintf("schedule-%08x", crc32.ChecksumIEEE([]byte(name)))
	}
	return normalized
}

// Manifest pairs a rendered CronJob with the base layer file it belongs to
type Manifest struct {
	FileName string
	CronJob  CronJob

	// Schedule is the originating schedule name, kept for collision reports
	Schedule string
}

// Compiler converts eligible schedule entries into CronJob manifests that
// re-invoke the host tool inside the cluster
type Compiler struct {
	image string
	bin   string
}

// NewCompiler constructs a manifest compiler using the given placeholder
// image and host tool binary
func NewCompiler(image, bin string) *Compiler {
	return &Compiler{
		image: image,
		bin:   bin,
	}
}

// Compile renders one schedule entry into a CronJob manifest. The cron
// expression is carried over verbatim, only the resource name is rewritten.
func (c *Compiler) Compile(entry models.ScheduleEntry) Manifest {
	name := NormalizeResourceName(entry.Name)

	labels := map[string]string{
		"app.kubernetes.io/name":         name,
		"meltano.kubernetes.io/schedule": entry.Name,
	}
	if entry.Job != "" {
		labels["meltano.kubernetes.io/job"] = entry.Job
	}

	return Manifest{
		FileName: name + ".yaml",
		Schedule: entry.Name,
		CronJob: CronJob{
			APIVersion: "batch/v1",
			Kind:       "CronJob",
			Metadata: ObjectMeta{
				Name:   name,
				Labels: labels,
			},
			Spec: CronJobSpec{
				Schedule:          entry.CronInterval,
				ConcurrencyPolicy: "Forbid",
				JobTemplate: JobTemplateSpec{
					Spec: JobSpec{
						Template: PodTemplateSpec{
							Spec: PodSpec{
								Containers: []Container{
									{
										Name:    name,
										Image:   c.image,
										Command: c.containerCommand(entry),
									},
								},
								RestartPolicy: "Never",
							},
						},
					},
				},
			},
		},
	}
}

// containerCommand always re-invokes the host tool, the manifest never
// carries pipeline semantics beyond the schedule field
func (c *Compiler) containerCommand(entry models.ScheduleEntry) []string {
	if entry.Type() == models.ScheduleTypeJob {
		return []string{c.bin, "run", entry.Job}
	}
	command := []string{c.bin, "elt"}
	if len(entry.ELTArgs) > 0 {
		for _, arg := range entry.ELTArgs {
			if arg == "--transform=None" {
				continue
			}
			command = append(command, arg)
		}
		return command
	}
	return append(command, entry.Extractor, entry.Loader)
}
