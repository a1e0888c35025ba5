package stockkeeper

import "github.com/shopspring/decimal"

// MaintenanceStatus classifies the margin maintenance rate of a pledged
// portfolio.
type MaintenanceStatus int

const (
	MaintenanceNone    MaintenanceStatus = iota // no outstanding loan
	MaintenanceDanger                           // below the margin call line
	MaintenanceWarning                          // between the margin call and warning lines
	MaintenanceSafe                             // at or above the warning line
)

func (s MaintenanceStatus) String() string {
	switch s {
	case MaintenanceDanger:
		return "danger"
	case MaintenanceWarning:
		return "warning"
	case MaintenanceSafe:
		return "safe"
	default:
		return "none"
	}
}

// Label is the human description of the status.
func (s MaintenanceStatus) Label() string {
	switch s {
	case MaintenanceDanger:
		return "margin call"
	case MaintenanceWarning:
		return "watch"
	case MaintenanceSafe:
		return "safe"
	default:
		return "no loan"
	}
}

func (s MaintenanceStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ClassifyMaintenance maps a maintenance rate (in percent) to its status.
// Without a loan the rate is irrelevant and the status is MaintenanceNone.
func (p Policy) ClassifyMaintenance(rate decimal.Decimal, hasLoan bool) MaintenanceStatus {
	switch {
	case !hasLoan:
		return MaintenanceNone
	case rate.LessThan(p.MarginCallLine):
		return MaintenanceDanger
	case rate.LessThan(p.WarningLine):
		return MaintenanceWarning
	default:
		return MaintenanceSafe
	}
}
