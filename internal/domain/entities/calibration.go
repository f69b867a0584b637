package entities

// CalibrationSystem is the canonical ADAS system vocabulary. Both the
// trigger resolver and the secondary-report parser must reduce to these
// names (via the alias table) before any comparison happens.
type CalibrationSystem string

const (
	SystemFrontCamera         CalibrationSystem = "front_camera"
	SystemFrontRadar          CalibrationSystem = "front_radar"
	SystemRearRadar           CalibrationSystem = "rear_radar"
	SystemBlindSpotMonitor    CalibrationSystem = "blind_spot_monitor"
	SystemSurroundViewMonitor CalibrationSystem = "surround_view_monitor"
	SystemRearCamera          CalibrationSystem = "rear_camera"
	SystemFrontParkingSensors CalibrationSystem = "front_parking_sensors"
	SystemRearParkingSensors  CalibrationSystem = "rear_parking_sensors"
	SystemSteeringAngleSensor CalibrationSystem = "steering_angle_sensor"
	SystemHeadlampAim         CalibrationSystem = "headlamp_aim"
	SystemLaneWatchCamera     CalibrationSystem = "lanewatch_camera"
	SystemAdaptiveCruiseRadar CalibrationSystem = "adaptive_cruise_radar"
	SystemAdaptiveHeadlamps   CalibrationSystem = "adaptive_headlamps"
	SystemRideHeightSensor    CalibrationSystem = "ride_height_sensor"
	SystemNightVisionCamera   CalibrationSystem = "night_vision_camera"
)

// ValidSystems returns all canonical calibration system values.
func ValidSystems() []CalibrationSystem {
	return []CalibrationSystem{
		SystemFrontCamera, SystemFrontRadar, SystemRearRadar,
		SystemBlindSpotMonitor, SystemSurroundViewMonitor, SystemRearCamera,
		SystemFrontParkingSensors, SystemRearParkingSensors,
		SystemSteeringAngleSensor, SystemHeadlampAim, SystemLaneWatchCamera,
		SystemAdaptiveCruiseRadar, SystemAdaptiveHeadlamps,
		SystemRideHeightSensor, SystemNightVisionCamera,
	}
}

// IsValid checks if the system is one of the canonical values.
func (s CalibrationSystem) IsValid() bool {
	for _, v := range ValidSystems() {
		if s == v {
			return true
		}
	}
	return false
}

// CalibrationType is the procedure family a calibration requires.
type CalibrationType string

const (
	TypeStatic           CalibrationType = "static"
	TypeDynamic          CalibrationType = "dynamic"
	TypeStaticAndDynamic CalibrationType = "static_and_dynamic"
	TypeSelfLearning     CalibrationType = "self_learning"
	TypeProgrammingOnly  CalibrationType = "programming_only"
)

// IsValid checks if the calibration type is one of the defined constants.
func (t CalibrationType) IsValid() bool {
	switch t {
	case TypeStatic, TypeDynamic, TypeStaticAndDynamic, TypeSelfLearning, TypeProgrammingOnly:
		return true
	}
	return false
}

// Confidence expresses how strongly a trigger rule implies a calibration.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// CalibrationTrigger is one declarative rule from the trigger table: a
// repair category that, under the right operation and equipment, implies
// a calibration. Rules are data loaded at startup, never code.
type CalibrationTrigger struct {
	RepairCategory        RepairCategory    `json:"repair_category"`
	System                CalibrationSystem `json:"system"`
	RequiredEquipmentTags []string          `json:"required_equipment_tags"`
	AllowedOperations     []OperationType   `json:"allowed_operations"`
	Confidence            Confidence        `json:"confidence"`
	Reason                string            `json:"reason"`
	// Condition flags vehicle-specific sub-cases (e.g. BSM mounted in
	// bumper vs quarter panel) that stay as needs-verification notes.
	Condition string `json:"condition,omitempty"`
}

// AllowsOperation reports whether the rule fires for the given verb.
func (t CalibrationTrigger) AllowsOperation(op OperationType) bool {
	for _, allowed := range t.AllowedOperations {
		if allowed == op {
			return true
		}
	}
	return false
}

// CalibrationCandidate is a calibration the trigger resolver believes the
// repair requires, before reconciliation against the secondary report.
type CalibrationCandidate struct {
	System          CalibrationSystem `json:"system"`
	CalibrationType CalibrationType   `json:"calibration_type"`
	TriggeredBy     *RepairOperation  `json:"triggered_by,omitempty"`
	Confidence      Confidence        `json:"confidence"`
	Reason          string            `json:"reason"`
	Condition       string            `json:"condition,omitempty"`
	// VehicleHasSystem is nil while the equipment profile can only say
	// "possible" – the needs-verification state.
	VehicleHasSystem *bool `json:"vehicle_has_system"`
}
