package model

// The implicit year axis shared by all zonal mean series. Every dense
// series spans the full range, missing years are nil.
const (
	StartYear = 1960
	EndYear   = 2100

	YearCount = EndYear - StartYear + 1
)

// ReferenceValueKey is the synthetic model id the API uses for the
// reference measurement entry.
const ReferenceValueKey = "reference_value"
