package attendance

// Status is the closed set of outcomes a day can be classified into.
type Status int

const (
	StatusAbsent Status = iota
	StatusPresent
	StatusMissingPunchOut
	StatusPunchError
	StatusAdminAssigned
)

var statusCodes = map[Status]string{
	StatusAbsent:          "absent",
	StatusPresent:         "present",
	StatusMissingPunchOut: "missing_punch_out",
	StatusPunchError:      "punch_error",
	StatusAdminAssigned:   "admin_assigned",
}

var statusLabels = map[Status]string{
	StatusAbsent:          "Absent",
	StatusPresent:         "Present",
	StatusMissingPunchOut: "System Assigned - Missing Punch-Out",
	StatusPunchError:      "Punch Error - Auto Assigned",
	StatusAdminAssigned:   "Admin Assigned",
}

// AllStatuses lists every status in declaration order.
func AllStatuses() []Status {
	return []Status{StatusAbsent, StatusPresent, StatusMissingPunchOut, StatusPunchError, StatusAdminAssigned}
}

// String returns the machine code used in API payloads.
func (s Status) String() string {
	if code, ok := statusCodes[s]; ok {
		return code
	}
	return "unknown"
}

// Label returns the human-readable text written to exported workbooks.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Unknown"
}

// IsAutoAssigned reports whether the day's hours were assigned by rule
// instead of computed from punch pairs.
func (s Status) IsAutoAssigned() bool {
	switch s {
	case StatusMissingPunchOut, StatusPunchError, StatusAdminAssigned:
		return true
	}
	return false
}
