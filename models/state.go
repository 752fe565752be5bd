package models

// HealthState is a fixed descriptor of operational status. The three
// states below are static reference data; group health is never computed.
type HealthState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// The three health states every group can report. New groups are always
// created in StateOK and no operation in scope transitions them.
var (
	StateOK       = HealthState{ID: "1", Name: "OK", Type: "passing"}
	StateDegraded = HealthState{ID: "2", Name: "Degraded", Type: "warning"}
	StateDown     = HealthState{ID: "3", Name: "Down", Type: "critical"}
)

// HealthStates returns the static state catalog keyed by state ID.
func HealthStates() map[string]HealthState {
	return map[string]HealthState{
		StateOK.ID:       StateOK,
		StateDegraded.ID: StateDegraded,
		StateDown.ID:     StateDown,
	}
}
