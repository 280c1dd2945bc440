package model

// Snapshot is the full state of the rental desk as one document: every
// device, customer, session, maintenance record, reservation and report.
type Snapshot struct {
	Devices      []Device            `json:"devices"`
	Customers    []Customer          `json:"customers"`
	Sessions     []Session           `json:"sessions"`
	Maintenance  []MaintenanceRecord `json:"maintenance"`
	Reservations []Reservation       `json:"reservations"`
	Reports      []DailyReport       `json:"reports"`
}
