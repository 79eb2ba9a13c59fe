package schema

// OutputType is the response format a task expects from a model.
type OutputType string

const (
	// OutputTypeLogLikelihood scores a fixed continuation given a context.
	OutputTypeLogLikelihood OutputType = "loglikelihood"
	// OutputTypeLogLikelihoodRolling scores an entire document with a rolling window.
	OutputTypeLogLikelihoodRolling OutputType = "loglikelihood_rolling"
	// OutputTypeMultipleChoice scores each answer choice and picks the best.
	OutputTypeMultipleChoice OutputType = "multiple_choice"
	// OutputTypeGenerateUntil generates free-form text up to stop sequences.
	OutputTypeGenerateUntil OutputType = "generate_until"
)

// OutputTypes lists every recognized output type.
var OutputTypes = []OutputType{
	OutputTypeLogLikelihood,
	OutputTypeLogLikelihoodRolling,
	OutputTypeMultipleChoice,
	OutputTypeGenerateUntil,
}

// IsValidOutputType reports whether s is a recognized output type.
func IsValidOutputType(s string) bool {
	for _, t := range OutputTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Aggregation names recognized for group-level metric aggregation.
const (
	AggregationMean   = "mean"
	AggregationBypass = "bypass"
)

// FilterNone is the default filter applied to model outputs.
const FilterNone = "none"

// MetricConfig describes a single metric attached to a task.
type MetricConfig struct {
	Metric            string `yaml:"metric" json:"metric" mapstructure:"metric"`
	Aggregation       string `yaml:"aggregation,omitempty" json:"aggregation,omitempty" mapstructure:"aggregation"`
	HigherIsBetter    *bool  `yaml:"higher_is_better,omitempty" json:"higher_is_better,omitempty" mapstructure:"higher_is_better"`
	IgnoreCase        bool   `yaml:"ignore_case,omitempty" json:"ignore_case,omitempty" mapstructure:"ignore_case"`
	IgnorePunctuation bool   `yaml:"ignore_punctuation,omitempty" json:"ignore_punctuation,omitempty" mapstructure:"ignore_punctuation"`
}

// AggregationOrDefault returns the aggregation name, defaulting to mean.
func (m *MetricConfig) AggregationOrDefault() string {
	if m.Aggregation == "" {
		return AggregationMean
	}
	return m.Aggregation
}

// HigherBetter reports whether larger metric values are better.
// Unset defaults to true.
func (m *MetricConfig) HigherBetter() bool {
	if m.HigherIsBetter == nil {
		return true
	}
	return *m.HigherIsBetter
}

// TaskConfig is a fully-populated benchmark task definition.
type TaskConfig struct {
	Task            string         `yaml:"task" json:"task" mapstructure:"task"`
	Include         string         `yaml:"include,omitempty" json:"include,omitempty" mapstructure:"include"`
	Group           StringOrList   `yaml:"group,omitempty" json:"group,omitempty" mapstructure:"group"`
	Tag             StringOrList   `yaml:"tag,omitempty" json:"tag,omitempty" mapstructure:"tag"`
	OutputType      string         `yaml:"output_type,omitempty" json:"output_type,omitempty" mapstructure:"output_type"`
	DatasetPath     string         `yaml:"dataset_path,omitempty" json:"dataset_path,omitempty" mapstructure:"dataset_path"`
	DatasetName     string         `yaml:"dataset_name,omitempty" json:"dataset_name,omitempty" mapstructure:"dataset_name"`
	TrainingSplit   string         `yaml:"training_split,omitempty" json:"training_split,omitempty" mapstructure:"training_split"`
	ValidationSplit string         `yaml:"validation_split,omitempty" json:"validation_split,omitempty" mapstructure:"validation_split"`
	TestSplit       string         `yaml:"test_split,omitempty" json:"test_split,omitempty" mapstructure:"test_split"`
	UsePrompt       string         `yaml:"use_prompt,omitempty" json:"use_prompt,omitempty" mapstructure:"use_prompt"`
	Description     string         `yaml:"description,omitempty" json:"description,omitempty" mapstructure:"description"`
	MetricList      []MetricConfig `yaml:"metric_list,omitempty" json:"metric_list,omitempty" mapstructure:"metric_list"`
	Metadata        map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty" mapstructure:"metadata"`
	Version         float64        `yaml:"version,omitempty" json:"version,omitempty" mapstructure:"version"`
}

// AggregateMetricConfig describes how a group aggregates a metric across its subtasks.
type AggregateMetricConfig struct {
	Metric       string       `yaml:"metric" json:"metric" mapstructure:"metric"`
	Aggregation  string       `yaml:"aggregation,omitempty" json:"aggregation,omitempty" mapstructure:"aggregation"`
	WeightBySize bool         `yaml:"weight_by_size,omitempty" json:"weight_by_size,omitempty" mapstructure:"weight_by_size"`
	FilterList   StringOrList `yaml:"filter_list,omitempty" json:"filter_list,omitempty" mapstructure:"filter_list"`
}

// AggregationOrDefault returns the aggregation name, defaulting to mean.
func (a *AggregateMetricConfig) AggregationOrDefault() string {
	if a.Aggregation == "" {
		return AggregationMean
	}
	return a.Aggregation
}

// Filters returns the filter list, defaulting to ["none"].
func (a *AggregateMetricConfig) Filters() []string {
	if len(a.FilterList) == 0 {
		return []string{FilterNone}
	}
	return a.FilterList
}

// GroupConfig is a named collection of tasks and/or other groups.
type GroupConfig struct {
	Group               string                  `yaml:"group" json:"group" mapstructure:"group"`
	GroupAlias          string                  `yaml:"group_alias,omitempty" json:"group_alias,omitempty" mapstructure:"group_alias"`
	Task                StringOrList            `yaml:"task,omitempty" json:"task,omitempty" mapstructure:"task"`
	AggregateMetricList []AggregateMetricConfig `yaml:"aggregate_metric_list,omitempty" json:"aggregate_metric_list,omitempty" mapstructure:"aggregate_metric_list"`
	Metadata            map[string]any          `yaml:"metadata,omitempty" json:"metadata,omitempty" mapstructure:"metadata"`
}

// Alias returns the display alias, falling back to the group name.
func (g *GroupConfig) Alias() string {
	if g.GroupAlias != "" {
		return g.GroupAlias
	}
	return g.Group
}

// IsTag reports whether the group is a tag: a flat, overlapping collection of
// tasks marked with `metadata.type: tag`.
func (g *GroupConfig) IsTag() bool {
	if g.Metadata == nil {
		return false
	}
	t, ok := g.Metadata["type"].(string)
	return ok && t == "tag"
}
