package app

import "go.trai.ch/buildsrc/internal/core/domain"

// Report summarizes a configuration pass.
type Report struct {
	Root    string         `json:"root"`
	Modules []ModuleReport `json:"modules"`
	Edges   []EdgeReport   `json:"edges"`
}

// ModuleReport is the outcome of configuring one module.
type ModuleReport struct {
	Path         string              `json:"path"`
	Dependencies []domain.Coordinate `json:"dependencies,omitempty"`
	Toolchain    []domain.Coordinate `json:"toolchain,omitempty"`
	Artifacts    []ArtifactReport    `json:"artifacts,omitempty"`
	EdgesAdded   int                 `json:"edges_added"`
}

// ArtifactReport describes one located group of preloaded artifacts.
type ArtifactReport struct {
	Key         string   `json:"key"`
	Dir         string   `json:"dir"`
	Paths       []string `json:"paths"`
	Fingerprint string   `json:"fingerprint"`
	// Changed is set when a previous pass recorded a different fingerprint.
	Changed bool `json:"changed"`
}

// EdgeReport renders an edge with task paths such as ":a:assemble".
type EdgeReport struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func edgeReports(tree *domain.ModuleTree) []EdgeReport {
	edges := tree.Edges()
	out := make([]EdgeReport, 0, len(edges))
	for _, e := range edges {
		out = append(out, EdgeReport{From: tree.TaskPath(e.From), To: tree.TaskPath(e.To)})
	}
	return out
}
