package payload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/kobo-uploader/constants"
	"github.com/joseph-ayodele/kobo-uploader/internal/source"
)

const projectID = "6c6b1fca-49a2-40b4-9d9f-dc1837525c92"

func demographicRecord() source.Record {
	return source.NewRecord(
		[]string{"Process_Status", "Reception_ID", "Full_Name", "Sex", "Group_Size"},
		[]string{"Registered", "R-014", "Amina Yusuf", "F", "4"},
	)
}

func submission(t *testing.T, doc map[string]any) map[string]any {
	t.Helper()
	sub, ok := doc["submission"].(map[string]any)
	require.True(t, ok, "payload missing submission object")
	return sub
}

func instanceID(t *testing.T, doc map[string]any) string {
	t.Helper()
	meta, ok := submission(t, doc)["meta"].(map[string]any)
	require.True(t, ok, "submission missing meta")
	id, ok := meta["instanceID"].(string)
	require.True(t, ok, "meta missing instanceID")
	return id
}

func TestBuild_DemographicShape(t *testing.T) {
	m, err := MappingByName(constants.MappingDemographic)
	require.NoError(t, err)
	b := NewBuilder(m, projectID)

	doc := b.Build(demographicRecord())
	assert.Equal(t, projectID, doc["id"])

	sub := submission(t, doc)
	assert.Equal(t, map[string]any{"uuid": m.FormUUID}, sub["formhub"])
	assert.Equal(t, m.Version, sub["__version__"])
	assert.Equal(t, "R-014", sub["Reception_ID"])
	assert.Equal(t, "Amina Yusuf", sub["Full_Name"])

	// Columns absent from the record coerce to empty string, never nil.
	assert.Equal(t, "", sub["Date_of_Birth"])
	assert.Equal(t, "", sub["Reception_Location"])

	assert.True(t, strings.HasPrefix(instanceID(t, doc), "uuid:"))
}

func TestBuild_ReceptionVariant(t *testing.T) {
	m, err := MappingByName(constants.MappingReception)
	require.NoError(t, err)
	b := NewBuilder(m, projectID)

	rec := source.NewRecord(
		[]string{"Reception_ID", "Type", "Group_Size"},
		[]string{"R-002", "family", "3"},
	)
	sub := submission(t, b.Build(rec))

	assert.Equal(t, "family", sub["Type"])
	assert.Equal(t, "3", sub["Group_Size"])
	// Demographic-only fields must not leak into the minimal variant.
	assert.NotContains(t, sub, "Full_Name")
}

func TestBuild_IdempotentExceptInstanceID(t *testing.T) {
	m, err := MappingByName(constants.MappingDemographic)
	require.NoError(t, err)
	b := NewBuilder(m, projectID)
	rec := demographicRecord()

	first := b.Build(rec)
	second := b.Build(rec)

	id1 := instanceID(t, first)
	id2 := instanceID(t, second)
	assert.NotEqual(t, id1, id2, "each build must mint a fresh instanceID")

	// Strip the instance ids and the rest must match exactly.
	delete(submission(t, first), "meta")
	delete(submission(t, second), "meta")
	assert.Equal(t, first, second)
}

func TestMappingByName_Unknown(t *testing.T) {
	_, err := MappingByName("household")
	require.Error(t, err)
}
