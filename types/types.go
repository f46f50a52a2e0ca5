package types

// MotorType is the classification result for one sample of a port's
// identification voltage. It is recomputed on every query; nothing in the
// firmware caches it.
type MotorType uint8

const (
	MotorNone MotorType = iota
	MotorMedium
	MotorLarge
)

func (m MotorType) String() string {
	switch m {
	case MotorMedium:
		return "medium"
	case MotorLarge:
		return "large"
	default:
		return "none"
	}
}

// AngleValue is the bus payload for an angle reading.
type AngleValue struct {
	Port         int    `json:"port"`
	Rotations    int32  `json:"rotations"`
	Millidegrees int32  `json:"millidegrees"`
	Motor        string `json:"motor"`
	TsMs         int64  `json:"ts_ms"`
}

// CountValue is the raw counter snapshot payload.
type CountValue struct {
	Port  int   `json:"port"`
	Count int32 `json:"count"`
	TsMs  int64 `json:"ts_ms"`
}

// VoltageValue is the diagnostic payload for the identification voltage.
type VoltageValue struct {
	Port       int    `json:"port"`
	Raw        uint16 `json:"raw"`
	Millivolts uint32 `json:"millivolts"`
	Motor      string `json:"motor"`
	TsMs       int64  `json:"ts_ms"`
}

// TachoState is the retained service state document.
type TachoState struct {
	Level  string `json:"level"`  // "idle", "ready"
	Status string `json:"status"` // freeform short code
	Ports  int    `json:"ports"`
	TsMs   int64  `json:"ts_ms"`
}

// ErrorReply is the generic failure reply for control verbs.
type ErrorReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// TachoConfig tunes the service; zero values select defaults.
type TachoConfig struct {
	PollIntervalMs uint32 `json:"poll_interval_ms"` // 0 => no background poll
	Report         bool   `json:"report"`           // write line feed to the report port
}
