package kustomize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	overlayKustomizationFileName = "kustomization.yml"
	overlayConfigMapFileName     = "env-config-map.yml"
	overlayResourcesFileName     = "resources.yml"
)

var overlayResourcesStub = []byte(`# Environment specific resources for this overlay.
# Anything added here should also be listed in kustomization.yml.
`)

// scaffoldOverlay creates the example overlay for the active environment.
// The overlay is the designated user customization surface, so every file is
// created only if absent and never overwritten afterwards.
func (r *Renderer) scaffoldOverlay(destination, environment string) error {
	if environment == "" {
		r.logger.Info("no environment set, skipping overlay scaffolding")
		return nil
	}

	overlayDir := filepath.Join(destination, overlaysDirName, environment)
	if err := r.fs.MkdirAll(overlayDir, dirPermission); err != nil {
		return fmt.Errorf("error creating overlay directory: %w", err)
	}

	kustomization := Kustomization{
		Resources: []string{
			filepath.Join("..", "..", baseDirName),
			overlayConfigMapFileName,
		},
	}
	if err := r.createIfAbsentYAML(filepath.Join(overlayDir, overlayKustomizationFileName), kustomization); err != nil {
		return err
	}

	configMap := ConfigMap{
		APIVersion: "v1",
		Kind:       "ConfigMap",
		Metadata: ObjectMeta{
			Name: "meltano-environment",
			Labels: map[string]string{
				"app.kubernetes.io/name": "meltano-environment",
			},
		},
		Data: map[string]string{
			"MELTANO_ENVIRONMENT": environment,
		},
	}
	if err := r.createIfAbsentYAML(filepath.Join(overlayDir, overlayConfigMapFileName), configMap); err != nil {
		return err
	}

	return r.createIfAbsent(filepath.Join(overlayDir, overlayResourcesFileName), overlayResourcesStub)
}

func (r *Renderer) createIfAbsentYAML(filePath string, doc interface{}) error {
	exists, err := afero.Exists(r.fs, filePath)
	if err != nil {
		return fmt.Errorf("error checking %s: %w", filePath, err)
	}
	if exists {
		return nil
	}
	return r.writeYAML(filePath, doc)
}

func (r *Renderer) createIfAbsent(filePath string, content []byte) error {
	exists, err := afero.Exists(r.fs, filePath)
	if err != nil {
		return fmt.Errorf("error checking %s: %w", filePath, err)
	}
	if exists {
		return nil
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
