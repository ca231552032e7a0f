package job

// Status represents the lifecycle state of a repair job
type Status string

const (
	StatusPending      Status = "pending"
	StatusInProgress   Status = "in-progress"
	StatusDiagnosis    Status = "diagnosis"
	StatusPartsOrdered Status = "parts-ordered"
	StatusRepairing    Status = "repairing"
	StatusTesting      Status = "testing"
	StatusCompleted    Status = "completed"
	StatusDelivered    Status = "delivered"
	StatusCancelled    Status = "cancelled"
)

// AllStatuses lists every status in lifecycle order
var AllStatuses = []Status{
	StatusPending, StatusInProgress, StatusDiagnosis, StatusPartsOrdered,
	StatusRepairing, StatusTesting, StatusCompleted, StatusDelivered, StatusCancelled,
}

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsFinished returns true for completed and delivered jobs.
// Finished jobs are never overdue and carry an actual delivery date.
func (s Status) IsFinished() bool {
	return s == StatusCompleted || s == StatusDelivered
}

// Priority represents how urgently a job should be handled
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AllPriorities lists every priority from lowest to highest
var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// IsValid checks if the priority is a valid Priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// String returns the string representation of Priority
func (p Priority) String() string {
	return string(p)
}

// Brand is the manufacturer of the device under repair
type Brand string

const (
	BrandSamsung   Brand = "samsung"
	BrandLG        Brand = "lg"
	BrandSony      Brand = "sony"
	BrandPanasonic Brand = "panasonic"
	BrandSharp     Brand = "sharp"
)

// AllBrands lists every supported brand
var AllBrands = []Brand{BrandSamsung, BrandLG, BrandSony, BrandPanasonic, BrandSharp}

// IsValid checks if the brand is a valid Brand
func (b Brand) IsValid() bool {
	switch b {
	case BrandSamsung, BrandLG, BrandSony, BrandPanasonic, BrandSharp:
		return true
	}
	return false
}

// String returns the string representation of Brand
func (b Brand) String() string {
	return string(b)
}

// ScreenSize is the diagonal size of the TV in inches
type ScreenSize string

const (
	ScreenSize32 ScreenSize = "32"
	ScreenSize42 ScreenSize = "42"
	ScreenSize50 ScreenSize = "50"
	ScreenSize55 ScreenSize = "55"
	ScreenSize65 ScreenSize = "65"
)

// IsValid checks if the screen size is a valid ScreenSize
func (s ScreenSize) IsValid() bool {
	switch s {
	case ScreenSize32, ScreenSize42, ScreenSize50, ScreenSize55, ScreenSize65:
		return true
	}
	return false
}

// ProblemCategory classifies the reported fault
type ProblemCategory string

const (
	ProblemNoPower      ProblemCategory = "no-power"
	ProblemNoPicture    ProblemCategory = "no-picture"
	ProblemNoSound      ProblemCategory = "no-sound"
	ProblemScreenDamage ProblemCategory = "screen-damage"
	ProblemConnectivity ProblemCategory = "connectivity"
)

// IsValid checks if the category is a valid ProblemCategory
func (c ProblemCategory) IsValid() bool {
	switch c {
	case ProblemNoPower, ProblemNoPicture, ProblemNoSound, ProblemScreenDamage, ProblemConnectivity:
		return true
	}
	return false
}

// String returns the string representation of ProblemCategory
func (c ProblemCategory) String() string {
	return string(c)
}
