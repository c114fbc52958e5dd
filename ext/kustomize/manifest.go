package kustomize

// Typed manifest objects serialized with a YAML encoder. Building these as
// structs instead of templating strings keeps schedule names with special
// characters from breaking the output.

type ObjectMeta struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

type CronJob struct {
	APIVersion string      `yaml:"apiVersion"`
	Kind       string      `yaml:"kind"`
	Metadata   ObjectMeta  `yaml:"metadata"`
	Spec       CronJobSpec `yaml:"spec"`
}

type CronJobSpec struct {
	Schedule          string          `yaml:"schedule"`
	ConcurrencyPolicy string          `yaml:"concurrencyPolicy,omitempty"`
	JobTemplate       JobTemplateSpec `yaml:"jobTemplate"`
}

type JobTemplateSpec struct {
	Spec JobSpec `yaml:"spec"`
}

type JobSpec struct {
	Template PodTemplateSpec `yaml:"template"`
}

type PodTemplateSpec struct {
	Spec PodSpec `yaml:"spec"`
}

type PodSpec struct {
	Containers    []Container `yaml:"containers"`
	RestartPolicy string      `yaml:"restartPolicy,omitempty"`
}

type Container struct {
	Name    string   `yaml:"name"`
	Image   string   `yaml:"image"`
	Command []string `yaml:"command,omitempty"`
}

type ConfigMap struct {
	APIVersion string            `yaml:"apiVersion"`
	Kind       string            `yaml:"kind"`
	Metadata   ObjectMeta        `yaml:"metadata"`
	Data       map[string]string `yaml:"data,omitempty"`
}

// Kustomization is the content of a kustomization file
type Kustomization struct {
	Resources    []string          `yaml:"resources,omitempty"`
	CommonLabels map[string]string `yaml:"commonLabels,omitempty"`
}
