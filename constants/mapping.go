package constants

// Field-mapping variant names accepted by the "mapping" config key.
const (
	MappingDemographic = "demographic" // full demographic record
	MappingReception   = "reception"   // minimal reception-count record
)
