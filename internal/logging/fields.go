package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCategory is the standardized structured logging key for category names.
	FieldCategory = "category"
	// FieldRunID is the standardized structured logging key for pipeline run identifiers.
	FieldRunID = "run_id"
	// FieldKind is the standardized structured logging key for record kinds (item/spell).
	FieldKind = "kind"
	// FieldRecordID is the standardized structured logging key for item/spell ids.
	FieldRecordID = "record_id"
	// FieldEventType is the standardized structured logging key for machine-readable event names.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized structured logging key for operator next steps.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized structured logging key for the user-facing consequence of a warning.
	FieldImpact = "impact"
)
