package entities

// OperationType classifies the labor verb detected on an estimate line.
type OperationType string

const (
	OperationReplace       OperationType = "replace"
	OperationRemoveReplace OperationType = "remove_replace"
	OperationRemoveInstall OperationType = "remove_install"
	OperationRepair        OperationType = "repair"
	OperationRefinish      OperationType = "refinish"
	OperationAim           OperationType = "aim"
	OperationProgram       OperationType = "program"
	OperationAlignment     OperationType = "alignment"
	OperationSectioning    OperationType = "sectioning"
)

// IsValid checks if the operation type is one of the defined constants.
func (o OperationType) IsValid() bool {
	switch o {
	case OperationReplace, OperationRemoveReplace, OperationRemoveInstall,
		OperationRepair, OperationRefinish, OperationAim, OperationProgram,
		OperationAlignment, OperationSectioning:
		return true
	}
	return false
}

// RepairCategory identifies the physical vehicle zone or component an
// estimate line refers to.
type RepairCategory string

const (
	CategoryWindshield        RepairCategory = "windshield"
	CategoryRearGlass         RepairCategory = "rear_glass"
	CategoryFrontBumper       RepairCategory = "front_bumper"
	CategoryRearBumper        RepairCategory = "rear_bumper"
	CategoryGrille            RepairCategory = "grille"
	CategoryEmblem            RepairCategory = "emblem"
	CategoryLeftMirror        RepairCategory = "left_mirror"
	CategoryRightMirror       RepairCategory = "right_mirror"
	CategoryMirror            RepairCategory = "mirror"
	CategoryLeftFender        RepairCategory = "left_fender"
	CategoryRightFender       RepairCategory = "right_fender"
	CategoryLeftFrontDoor     RepairCategory = "left_front_door"
	CategoryRightFrontDoor    RepairCategory = "right_front_door"
	CategoryLeftRearDoor      RepairCategory = "left_rear_door"
	CategoryRightRearDoor     RepairCategory = "right_rear_door"
	CategoryLeftQuarterPanel  RepairCategory = "left_quarter_panel"
	CategoryRightQuarterPanel RepairCategory = "right_quarter_panel"
	CategoryLiftgate          RepairCategory = "liftgate"
	CategoryTrunkLid          RepairCategory = "trunk_lid"
	CategoryHood              RepairCategory = "hood"
	CategoryRoof              RepairCategory = "roof"
	CategoryLeftRocker        RepairCategory = "left_rocker"
	CategoryRightRocker       RepairCategory = "right_rocker"
	CategoryLeftHeadlamp      RepairCategory = "left_headlamp"
	CategoryRightHeadlamp     RepairCategory = "right_headlamp"
	CategoryHeadlamp          RepairCategory = "headlamp"
	CategoryTaillamp          RepairCategory = "taillamp"
	CategoryFogLamp           RepairCategory = "fog_lamp"
	CategorySteeringColumn    RepairCategory = "steering_column"
	CategorySteeringRack      RepairCategory = "steering_rack"
	CategorySuspension        RepairCategory = "suspension"
	CategoryControlArm        RepairCategory = "control_arm"
	CategoryKnuckle           RepairCategory = "knuckle"
	CategoryStrut             RepairCategory = "strut"
	CategoryWheel             RepairCategory = "wheel"
	CategoryAlignment         RepairCategory = "alignment"
	CategoryFrontCamera       RepairCategory = "front_camera"
	CategoryRearCamera        RepairCategory = "rear_camera"
	CategorySurroundCamera    RepairCategory = "surround_camera"
	CategoryFrontRadar        RepairCategory = "front_radar"
	CategoryRearRadarSensor   RepairCategory = "rear_radar_sensor"
	CategoryBlindSpotSensor   RepairCategory = "blind_spot_sensor"
	CategoryParkingSensor     RepairCategory = "parking_sensor"
	CategoryRideHeightSensor  RepairCategory = "ride_height_sensor"
	CategoryAirbagDeployment  RepairCategory = "airbag_deployment"
	CategoryUnknown           RepairCategory = "unknown"
)

// IsSensor reports whether the category is direct sensor, camera or radar
// hardware rather than a body zone.
func (c RepairCategory) IsSensor() bool {
	switch c {
	case CategoryFrontCamera, CategoryRearCamera, CategorySurroundCamera,
		CategoryFrontRadar, CategoryRearRadarSensor, CategoryBlindSpotSensor,
		CategoryParkingSensor, CategoryRideHeightSensor:
		return true
	}
	return false
}

// Side is the left/right location qualifier parsed from an estimate line.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Position is the front/rear location qualifier parsed from an estimate line.
type Position string

const (
	PositionFront Position = "front"
	PositionRear  Position = "rear"
)

// ComponentMatch records which category pattern matched and on what text.
type ComponentMatch struct {
	Category    RepairCategory `json:"category"`
	MatchedText string         `json:"matched_text"`
	Description string         `json:"description"`
}

// LineLocation holds the optional directional qualifiers for a repair line.
type LineLocation struct {
	Side     *Side     `json:"side,omitempty"`
	Position *Position `json:"position,omitempty"`
}

// RepairOperation is one structured repair line extracted from estimate text.
// Immutable once produced by the parser.
type RepairOperation struct {
	LineNumber int            `json:"line_number"`
	RawText    string         `json:"raw_text"`
	Operation  OperationType  `json:"operation"`
	Component  ComponentMatch `json:"component"`
	Location   LineLocation   `json:"location"`
	PartNumber string         `json:"part_number,omitempty"`
}

// DedupKey returns the identity used to collapse duplicate repair lines.
// Two lines naming the same category, operation and location are one repair.
func (r RepairOperation) DedupKey() string {
	key := string(r.Component.Category) + "|" + string(r.Operation) + "|"
	if r.Location.Side != nil {
		key += string(*r.Location.Side)
	}
	key += "|"
	if r.Location.Position != nil {
		key += string(*r.Location.Position)
	}
	return key
}
