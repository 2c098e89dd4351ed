package models

// String methods for the custom string types.

// Confidence
func (c Confidence) String() string { return string(c) }

// OpportunityType
func (o OpportunityType) String() string { return string(o) }

// InsightType
func (i InsightType) String() string { return string(i) }
