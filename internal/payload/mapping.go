// Package payload maps records to KoBo form-submission documents.
package payload

import (
	"fmt"

	"github.com/joseph-ayodele/kobo-uploader/constants"
)

// Mapping describes one field-mapping variant: which columns are carried into
// the submission and which form version they belong to. The mapped field set
// is configuration, not code; adding a variant means adding a Mapping.
type Mapping struct {
	Name     string
	FormUUID string
	Version  string
	Fields   []string
}

// The two deployed variants.
var (
	demographicMapping = Mapping{
		Name:     constants.MappingDemographic,
		FormUUID: "6c18862e8a0442f5b04e957541bb223d",
		Version:  "vHgTnHiEdARTknHYRTLR2x",
		Fields: []string{
			"Process_Status",
			"Reception_ID",
			"Full_Name",
			"Sex",
			"Date_of_Birth",
			"Arrival_Date",
			"Ethnicity",
			"Group_Size",
			"Reception_Location",
		},
	}

	receptionMapping = Mapping{
		Name:     constants.MappingReception,
		FormUUID: "ba58ebec6e0948788e3b6069a1e2f19f",
		Version:  "v6aBj5Nyn7GUydpo5kXjsv",
		Fields: []string{
			"Reception_ID",
			"Type",
			"Group_Size",
		},
	}
)

// MappingByName resolves a configured variant name to its Mapping.
func MappingByName(name string) (Mapping, error) {
	switch name {
	case constants.MappingDemographic:
		return demographicMapping, nil
	case constants.MappingReception:
		return receptionMapping, nil
	default:
		return Mapping{}, fmt.Errorf("unknown mapping variant: %q", name)
	}
}
