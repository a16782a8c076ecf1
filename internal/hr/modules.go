package hr

// Module names as the backend keys them in moduleConfig maps.
const (
	ModuleEmployeeManagement   = "employeeManagement"
	ModulePayrollManagement    = "payrollManagement"
	ModuleLeaveManagement      = "leaveManagement"
	ModuleAttendanceManagement = "attendanceManagement"
	ModulePerformanceTracking  = "performanceTracking"
	ModuleEmployeeFeedback     = "employeeFeedback"
	ModuleHiringManagement     = "hiringManagement"
	ModuleAIFeedbackAnalyze    = "aiFeedbackAnalyze"
	ModuleAIAttritionPredict   = "aiAttritionPrediction"
)

// ExtendedModules are the selectable flags; the core modules above them are
// always on for an active tenant.
var ExtendedModules = []string{
	ModulePerformanceTracking,
	ModuleEmployeeFeedback,
	ModuleHiringManagement,
	ModuleAIFeedbackAnalyze,
	ModuleAIAttritionPredict,
}

// ModuleConfig maps module names to their enabled state for one organization.
type ModuleConfig map[string]bool

// Enabled reports a flag, treating missing keys as disabled.
func (m ModuleConfig) Enabled(name string) bool {
	if m == nil {
		return false
	}
	return m[name]
}

// Clone returns an independent copy so stored config is never aliased by the
// screens that edit it.
func (m ModuleConfig) Clone() ModuleConfig {
	if m == nil {
		return nil
	}
	out := make(ModuleConfig, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
