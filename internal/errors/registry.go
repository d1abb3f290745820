package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Usage Errors (O001-O019)
	// ============================================

	"O001": {
		Category: CategoryUsage,
		Message:  "Write to computed cell",
		Detail:   "Computed cells derive their value from a computation and have no externally assignable state. Write to one of the cells the computation reads instead.",
	},
	"O002": {
		Category: CategoryUsage,
		Message:  "Value type mismatch",
		Detail:   "The value passed to SetAny does not have the cell's element type.",
	},
	"O003": {
		Category: CategoryUsage,
		Message:  "Invalid computation",
		Detail:   "A computation must be a func() T, or a func(R) T together with a receiver bound through WithReceiver.",
	},

	// ============================================
	// Computation Errors (O020-O039)
	// ============================================

	"O020": {
		Category: CategoryComputation,
		Message:  "Computation panicked",
		Detail:   "The computation behind a computed cell panicked. The cell keeps its previous value and dependencies; it is not re-evaluated until one of those dependencies changes again.",
	},

	// ============================================
	// Config Errors (C001-C019)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "The observable-bench.json configuration file could not be found.",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The configuration file contains invalid JSON.",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration value is out of range.",
	},

	// ============================================
	// CLI Errors (C040-C059)
	// ============================================

	"C040": {
		Category: CategoryCLI,
		Message:  "Invalid flag value",
		Detail:   "A command line flag has an invalid value.",
	},
	"C041": {
		Category: CategoryCLI,
		Message:  "Metrics server failed",
		Detail:   "The metrics HTTP server could not be started.",
	},
	"C042": {
		Category: CategoryCLI,
		Message:  "Run interrupted",
		Detail:   "The bench run was cancelled before all writes were performed.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
