package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Standard Tracing Fields (Context level)
// These fields are propagated through the call chain
// ============================================

const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldMaterialID is the material record ID
	FieldMaterialID = "material_id"

	// FieldMaterial is the material display name
	FieldMaterial = "material"

	// FieldKind is the image kind (primary/space/product)
	FieldKind = "kind"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldBranch is the winning resolver branch
	FieldBranch = "branch"
)

// ============================================
// Standard Metric Fields (Entry level)
// These fields are used for aggregation and alerting
// ============================================

const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"

	// FieldPath is a file path under the project root
	FieldPath = "path"
)
