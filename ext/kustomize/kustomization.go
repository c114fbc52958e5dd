package kustomize

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// writeKustomization regenerates the base layer kustomization from the
// manifests actually present on disk. Any manual edit to this file is
// discarded on the next render, that is a documented invariant of the base
// layer, not an accident.
func (r *Renderer) writeKustomization(baseDir string) error {
	infos, err := afero.ReadDir(r.fs, baseDir)
	if err != nil {
		return fmt.Errorf("error reading base directory: %w", err)
	}

	resources := []string{}
	for _, info := range infos {
		if info.IsDir() || info.Name() == kustomizationFileName {
			continue
		}
		if filepath.Ext(info.Name()) != ".yaml" {
			continue
		}
		resources = append(resources, info.Name())
	}
	sort.Strings(resources)

	kustomization := Kustomization{
		Resources:    resources,
		CommonLabels: r.commonLabels(),
	}
	return r.writeYAML(filepath.Join(baseDir, kustomizationFileName), kustomization)
}
