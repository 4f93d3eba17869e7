package payload

import (
	"github.com/google/uuid"

	"github.com/joseph-ayodele/kobo-uploader/internal/source"
)

// Builder turns one Record into a submission document for a fixed project and
// mapping. Pure apart from the fresh meta.instanceID minted per call, which
// gives every submission attempt a distinct remote identity.
type Builder struct {
	mapping   Mapping
	projectID string
}

func NewBuilder(m Mapping, projectID string) *Builder {
	return &Builder{mapping: m, projectID: projectID}
}

// Mapping returns the variant this builder was configured with.
func (b *Builder) Mapping() Mapping {
	return b.mapping
}

// Build constructs the JSON submission document for one record. Absent cells
// come through as empty strings; a malformed record never fails the build.
func (b *Builder) Build(rec source.Record) map[string]any {
	sub := map[string]any{
		"formhub":     map[string]any{"uuid": b.mapping.FormUUID},
		"__version__": b.mapping.Version,
		"meta":        map[string]any{"instanceID": "uuid:" + uuid.New().String()},
	}
	for _, f := range b.mapping.Fields {
		sub[f] = rec.Field(f)
	}
	return map[string]any{
		"id":         b.projectID,
		"submission": sub,
	}
}
