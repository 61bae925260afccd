package config

// ModuleFile represents the structure of a module.yaml descriptor.
type ModuleFile struct {
	Name         string             `yaml:"name"`
	Modules      []string           `yaml:"modules"`
	Tasks        map[string]TaskDTO `yaml:"tasks"`
	Dependencies []string           `yaml:"dependencies"`
	Toolchain    []string           `yaml:"toolchain"`
	Preloaded    []PreloadDTO       `yaml:"preloaded"`
	Links        []LinkDTO          `yaml:"links"`
}

// TaskDTO represents a task definition in a module descriptor.
type TaskDTO struct {
	DependsOn []string `yaml:"dependsOn"`
}

// PreloadDTO represents a group of preloaded artifacts.
type PreloadDTO struct {
	Names  []string `yaml:"names"`
	Dir    string   `yaml:"dir"`
	Subdir string   `yaml:"subdir"`
	SDK    bool     `yaml:"sdk"`
	Core   bool     `yaml:"core"`
}

// LinkDTO represents a "depends on if present" declaration.
type LinkDTO struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Mode string `yaml:"mode"`
}
