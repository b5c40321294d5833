package spec

const (
	ReferenceCSV      = "csv"
	ReferencePostgres = "postgres"

	RecoveryText     = "text"
	RecoveryPosition = "position"
)

// EvalSpec describes one evaluation: where the reference and the runs live,
// how run rows get their study ids back, and where to write the report.
type EvalSpec struct {
	Reference  Reference        `yaml:"reference" json:"reference"`
	Runs       Runs             `yaml:"runs" json:"runs"`
	Recovery   Recovery         `yaml:"recovery" json:"recovery"`
	Evaluation EvaluationConfig `yaml:"evaluation" json:"evaluation"`
	Output     Output           `yaml:"output" json:"output"`
}

type Reference struct {
	Type       string `yaml:"type" json:"type"`
	Path       string `yaml:"path,omitempty" json:"path,omitempty"`
	Connection string `yaml:"connection,omitempty" json:"connection,omitempty"`
	Table      string `yaml:"table,omitempty" json:"table,omitempty"`
}

type Runs struct {
	Dir    string `yaml:"dir" json:"dir"`
	Prefix string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix string `yaml:"suffix,omitempty" json:"suffix,omitempty"`
}

type Recovery struct {
	Mode       string `yaml:"mode" json:"mode"`
	Mapping    string `yaml:"mapping,omitempty" json:"mapping,omitempty"`
	OrderedIDs string `yaml:"ordered_ids,omitempty" json:"ordered_ids,omitempty"`
}

type EvaluationConfig struct {
	Workers          int  `yaml:"workers" json:"workers"`
	FailFast         bool `yaml:"fail_fast" json:"fail_fast"`
	IgnoreUnresolved bool `yaml:"ignore_unresolved" json:"ignore_unresolved"`
	// Scoring is "composite" (default) or "flat".
	Scoring string `yaml:"scoring,omitempty" json:"scoring,omitempty"`
}

type Output struct {
	JSON string `yaml:"json,omitempty" json:"json,omitempty"`
	CSV  string `yaml:"csv,omitempty" json:"csv,omitempty"`
}
