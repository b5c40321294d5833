package pg

import (
	"testing"

	"github.com/DjordjeVuckovic/labeleval/internal/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func code(v int16) *int16 { return &v }

func TestBuildMatrix(t *testing.T) {
	records := []referenceRow{
		{StudyID: "s1", Category: label.Edema, Value: code(1)},
		{StudyID: "s1", Category: label.AirspaceOpacity, Value: code(-1)},
		{StudyID: "s2", Category: label.Fracture, Value: nil},
		{StudyID: "s2", Category: label.NoFinding, Value: code(0)},
	}

	m, err := buildMatrix(records)
	require.NoError(t, err)

	assert.Equal(t, []string{"s1", "s2"}, m.IDs)
	assert.Equal(t, label.Categories, m.Categories)
	assert.Equal(t, label.Positive, m.Values[0][m.Column(label.Edema)])
	assert.Equal(t, label.Uncertain, m.Values[0][m.Column(label.LungOpacity)])
	assert.Equal(t, label.Missing, m.Values[0][m.Column(label.Fracture)])
	assert.Equal(t, label.Missing, m.Values[1][m.Column(label.Fracture)])
	assert.Equal(t, label.ExplicitNegative, m.Values[1][m.Column(label.NoFinding)])
}

func TestBuildMatrix_Errors(t *testing.T) {
	tests := []struct {
		name    string
		records []referenceRow
		wantErr string
	}{
		{"unknown category", []referenceRow{{StudyID: "s1", Category: "Spleen", Value: code(1)}}, `unknown category "Spleen"`},
		{"bad code", []referenceRow{{StudyID: "s1", Category: label.Edema, Value: code(3)}}, `study "s1"`},
		{"synonym collision", []referenceRow{
			{StudyID: "s1", Category: label.AirspaceOpacity, Value: code(1)},
			{StudyID: "s1", Category: label.LungOpacity, Value: code(0)},
		}, `same category "Lung Opacity"`},
		{"synonym collision with null", []referenceRow{
			{StudyID: "s2", Category: label.LungOpacity, Value: nil},
			{StudyID: "s2", Category: label.AirspaceOpacity, Value: code(1)},
		}, `study "s2" has both`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMatrix(tt.records)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewReference_DefaultTable(t *testing.T) {
	r := NewReference(nil, "")
	assert.Equal(t, "postgres:reference_labels", r.Name())
}
