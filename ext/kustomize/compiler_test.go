package kustomize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/meltano/kubernetes-ext/ext/kustomize"
	"github.com/meltano/kubernetes-ext/models"
)

func TestNormalizeResourceName(t *testing.T) {
	t.Run("lowercases and replaces invalid characters", func(t *testing.T) {
		assert.Equal(t, "daily-load", kustomize.NormalizeResourceName("Daily-Load"))
		assert.Equal(t, "daily-load", kustomize.NormalizeResourceName("daily_load"))
		assert.Equal(t, "tap-gitlab-to-target-postgres", kustomize.NormalizeResourceName("tap gitlab → to target.postgres"))
	})
	t.Run("squeezes and trims dashes", func(t *testing.T) {
		assert.Equal(t, "a-b", kustomize.NormalizeResourceName("--a---b--"))
	})
	t.Run("truncates to the kubernetes resource name limit", func(t *testing.T) {
		long := strings.Repeat("a", 80)
		assert.Len(t, kustomize.NormalizeResourceName(long), 63)
	})
	t.Run("falls back to a stable generated name when nothing survives", func(t *testing.T) {
		normalized := kustomize.NormalizeResourceName("☂☂")
		assert.Regexp(t, `^schedule-[0-9a-f]{8}$`, normalized)
		assert.Equal(t, normalized, kustomize.NormalizeResourceName("☂☂"))
		assert.NotEqual(t, normalized, kustomize.NormalizeResourceName("✈✈"))
	})
	t.Run("does not end with a dash after truncation", func(t *testing.T) {
		name := strings.Repeat("a", 62) + "-tail"
		normalized := kustomize.NormalizeResourceName(name)
		assert.Len(t, normalized, 62)
		assert.False(t, strings.HasSuffix(normalized, "-"))
	})
}

func TestCompiler(t *testing.T) {
	compiler := kustomize.NewCompiler("meltano-project:dev", "meltano")

	t.Run("carries the cron expression over verbatim", func(t *testing.T) {
		manifest := compiler.Compile(models.ScheduleEntry{
			Name:         "gitlab-to-postgres",
			CronInterval: "15 4 * * 1-5",
			Extractor:    "tap-gitlab",
			Loader:       "target-postgres",
		})
		assert.Equal(t, "15 4 * * 1-5", manifest.CronJob.Spec.Schedule)
		assert.Equal(t, "gitlab-to-postgres.yaml", manifest.FileName)
		assert.Equal(t, "batch/v1", manifest.CronJob.APIVersion)
		assert.Equal(t, "CronJob", manifest.CronJob.Kind)
	})

	t.Run("invokes elt with the extractor loader pair", func(t *testing.T) {
		manifest := compiler.Compile(models.ScheduleEntry{
			Name:         "gitlab-to-postgres",
			CronInterval: "0 0 * * *",
			Extractor:    "tap-gitlab",
			Loader:       "target-postgres",
		})
		container := manifest.CronJob.Spec.JobTemplate.Spec.Template.Spec.Containers[0]
		assert.Equal(t, []string{"meltano", "elt", "tap-gitlab", "target-postgres"}, container.Command)
		assert.Equal(t, "meltano-project:dev", container.Image)
	})

	t.Run("prefers recorded elt args and drops the noop transform", func(t *testing.T) {
		manifest := compiler.Compile(models.ScheduleEntry{
			Name:         "gitlab-to-postgres",
			CronInterval: "0 0 * * *",
			Extractor:    "tap-gitlab",
			Loader:       "target-postgres",
			ELTArgs:      []string{"tap-gitlab", "target-postgres", "--transform=None", "--state-id=gitlab"},
		})
		container := manifest.CronJob.Spec.JobTemplate.Spec.Template.Spec.Containers[0]
		assert.Equal(t, []string{"meltano", "elt", "tap-gitlab", "target-postgres", "--state-id=gitlab"}, container.Command)
	})

	t.Run("invokes run for named job schedules", func(t *testing.T) {
		manifest := compiler.Compile(models.ScheduleEntry{
			Name:         "Nightly Warehouse",
			CronInterval: "0 0 * * *",
			Job:          "warehouse-refresh",
		})
		container := manifest.CronJob.Spec.JobTemplate.Spec.Template.Spec.Containers[0]
		assert.Equal(t, []string{"meltano", "run", "warehouse-refresh"}, container.Command)
		assert.Equal(t, "nightly-warehouse", manifest.CronJob.Metadata.Name)
		assert.Equal(t, "warehouse-refresh", manifest.CronJob.Metadata.Labels["meltano.kubernetes.io/job"])
	})

	t.Run("labels the manifest with the originating schedule", func(t *testing.T) {
		manifest := compiler.Compile(models.ScheduleEntry{
			Name:         "Daily-Load",
			CronInterval: "0 0 * * *",
			Extractor:    "tap-x",
			Loader:       "target-y",
		})
		assert.Equal(t, "daily-load", manifest.CronJob.Metadata.Labels["app.kubernetes.io/name"])
		assert.Equal(t, "Daily-Load", manifest.CronJob.Metadata.Labels["meltano.kubernetes.io/schedule"])
	})

	t.Run("serializes special characters safely", func(t *testing.T) {
		manifest := compiler.Compile(models.ScheduleEntry{
			Name:         `sync: "quoted" {name}`,
			CronInterval: "0 0 * * *",
			Extractor:    "tap-x",
			Loader:       "target-y",
		})
		content, err := yaml.Marshal(manifest.CronJob)
		assert.NoError(t, err)

		var decoded kustomize.CronJob
		assert.NoError(t, yaml.Unmarshal(content, &decoded))
		assert.Equal(t, `sync: "quoted" {name}`, decoded.Metadata.Labels["meltano.kubernetes.io/schedule"])
	})
}
