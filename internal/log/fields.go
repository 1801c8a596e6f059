package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldCommand   = "command"
	FieldOperation = "operation"
	FieldPath      = "path"
	FieldError     = "error"
	FieldID        = "id"
	FieldMonth     = "month"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldCount     = "count"
)

const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentStorage = "storage"
	ComponentTracker = "tracker"
	ComponentConfig  = "config"
)

const (
	OpLoad   = "load"
	OpSave   = "save"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpUpsert = "upsert"
	OpExport = "export"
)
