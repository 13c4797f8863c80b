package xctsk

// Fixed values of the classic task layout.
const (
	Version         = 1
	TaskTypeClassic = "CLASSIC"
	DirectionExit   = "EXIT"
	GoalCylinder    = "CYLINDER"
	EarthModelWGS84 = "WGS84"
)

// TurnpointType tags a turnpoint with its role in the task.
type TurnpointType string

const (
	TypeTakeoff TurnpointType = "TAKEOFF"
	TypeSSS     TurnpointType = "SSS"
	TypeESS     TurnpointType = "ESS"
)

// SSSType is the start-of-speed-section timing mode.
type SSSType string

const (
	SSSRace        SSSType = "RACE"
	SSSElapsedTime SSSType = "ELAPSED-TIME"
)

// Task is the root of an .xctsk document.
type Task struct {
	Version    int         `json:"version"`
	TaskType   string      `json:"taskType"`
	Turnpoints []Turnpoint `json:"turnpoints"`
	SSS        SSS         `json:"sss"`
	Goal       Goal        `json:"goal"`
	EarthModel string      `json:"earthModel"`
}

// Turnpoint is one cylinder of the task.
type Turnpoint struct {
	Radius   float64       `json:"radius"`
	Waypoint Waypoint      `json:"waypoint"`
	Type     TurnpointType `json:"type,omitempty"`
}

// Waypoint is the center of a turnpoint cylinder.
type Waypoint struct {
	Lon         float64 `json:"lon"`
	Lat         float64 `json:"lat"`
	AltSmoothed float64 `json:"altSmoothed"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

// SSS describes the start of the speed section.
type SSS struct {
	Type      SSSType  `json:"type"`
	Direction string   `json:"direction"`
	TimeGates []string `json:"timeGates,omitempty"`
}

// Goal describes the goal cylinder deadline.
type Goal struct {
	Type     string `json:"type"`
	Deadline string `json:"deadline"`
}

// NewTask assembles a classic task. The SSS type is RACE when there is at
// least one start gate and ELAPSED-TIME otherwise.
func NewTask(turnpoints []Turnpoint, gates []string, deadline string) *Task {
	if turnpoints == nil {
		turnpoints = []Turnpoint{}
	}
	sss := SSS{Type: SSSElapsedTime, Direction: DirectionExit}
	if len(gates) > 0 {
		sss.Type = SSSRace
		sss.TimeGates = gates
	}
	return &Task{
		Version:    Version,
		TaskType:   TaskTypeClassic,
		Turnpoints: turnpoints,
		SSS:        sss,
		Goal:       Goal{Type: GoalCylinder, Deadline: deadline},
		EarthModel: EarthModelWGS84,
	}
}
