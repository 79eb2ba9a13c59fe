package schema

// HarnessConfiguration represents the schema for the `lmeval.yaml` CLI config.
type HarnessConfiguration struct {
	BasePath    string          `yaml:"base_path" json:"base_path" mapstructure:"base_path"`
	Tasks       TasksConfig     `yaml:"tasks" json:"tasks" mapstructure:"tasks"`
	Logs        Logs            `yaml:"logs,omitempty" json:"logs,omitempty" mapstructure:"logs"`
	Settings    HarnessSettings `yaml:"settings,omitempty" json:"settings,omitempty" mapstructure:"settings"`
	Initialized bool            `yaml:"initialized" json:"initialized" mapstructure:"initialized"`
}

// TasksConfig configures where task definitions are discovered.
type TasksConfig struct {
	BasePath      string   `yaml:"base_path" json:"base_path" mapstructure:"base_path"`
	IncludedPaths []string `yaml:"included_paths" json:"included_paths" mapstructure:"included_paths"`
	ExcludedPaths []string `yaml:"excluded_paths" json:"excluded_paths" mapstructure:"excluded_paths"`
}

// HarnessSettings holds behavior toggles for loading and merging.
type HarnessSettings struct {
	ListMergeStrategy string `yaml:"list_merge_strategy" json:"list_merge_strategy" mapstructure:"list_merge_strategy"`
	MaxIncludeDepth   int    `yaml:"max_include_depth" json:"max_include_depth" mapstructure:"max_include_depth"`
}

// Logs configures log output destination and level.
type Logs struct {
	File  string `yaml:"file" json:"file" mapstructure:"file"`
	Level string `yaml:"level" json:"level" mapstructure:"level"`
}
