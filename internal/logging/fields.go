package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldProject is the standardized key for the project being authored.
	FieldProject = "project"
	// FieldStage is the standardized key for pipeline stage names (link, render, author).
	FieldStage = "stage"
	// FieldBuildID is the standardized key for build history identifiers.
	FieldBuildID = "build_id"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)
