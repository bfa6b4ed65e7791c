package backdrop

import "github.com/Carmen-Shannon/oxy-backdrop/common"

// Circuit grid layout. Trace coordinates are multiples of CellSize within [-HalfGrid, HalfGrid].
const (
	GridSize = 30
	CellSize = 15
	HalfGrid = GridSize * CellSize / 2
)

// Circuit generation.
const (
	DefaultTraceCount = 50

	MinSegments = 3
	MaxSegments = 7

	MinSegmentCells = 2
	MaxSegmentCells = 6

	SignalProbability = 0.5
	MinSignalSpeed    = 0.002
	MaxSignalSpeed    = 0.006
)

// Streak field.
const (
	DefaultStreakCount = 250

	StreakBoundX = 400
	StreakBoundY = 300
	StreakDepth  = 300

	StreakWidth     = 0.3
	MinStreakHeight = 2
	MaxStreakHeight = 7
	MinStreakSpeed  = 0.2
	MaxStreakSpeed  = 0.7
)

// Geometry sizes in world units.
const (
	NodeInnerRadius = 0.4
	NodeOuterRadius = 0.6
	SignalRadius    = 1
)

// Camera.
const (
	CameraFovDegrees = 75
	CameraNear       = 0.1
	CameraFar        = 1000
	CameraDistance   = 150
)

// Style baselines.
const (
	TraceBaseOpacity  = 0.2
	StreakBaseOpacity = 0.7
)

var (
	TraceColor      = common.ColorFromHex(0x00aaff)
	NodeColor       = common.ColorFromHex(0x00aaff)
	SignalColor     = common.ColorFromHex(0x00ffff)
	StreakColor     = common.ColorFromHex(0xe0ffff)
	CircuitBackdrop = common.ColorFromHex(0x0a0a1a)
	StreakBackdrop  = common.ColorFromHex(0x003366)
)
