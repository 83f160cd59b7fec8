package details

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Skufu/GoRocky-symptoms/internal/knowledge"
)

type fetcherFunc func(string) (knowledge.Details, error)

func (f fetcherFunc) DetailsOf(d string) (knowledge.Details, error) { return f(d) }

func TestLookup_PassesBundleThrough(t *testing.T) {
	want := knowledge.Details{
		Description: "Allergy is an immune system reaction.",
		Precautions: []string{"apply calamine"},
		Medications: []string{"Antihistamines"},
		Diet:        []string{"Elimination Diet"},
		Workout:     []string{},
	}
	a := NewAggregator(fetcherFunc(func(string) (knowledge.Details, error) { return want, nil }), nil)

	b := a.Lookup("Allergy")
	assert.False(t, b.Degraded)
	assert.Equal(t, want, b.Details)
}

func TestLookup_DegradesOnError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	a := NewAggregator(fetcherFunc(func(string) (knowledge.Details, error) {
		return knowledge.Details{}, errors.New("boom")
	}), zap.New(core))

	b := a.Lookup("Allergy")
	require.True(t, b.Degraded)
	assert.Equal(t, NoDescription, b.Description)
	assert.NotNil(t, b.Precautions)
	assert.Empty(t, b.Precautions)
	assert.Empty(t, b.Medications)
	assert.Empty(t, b.Diet)
	assert.Empty(t, b.Workout)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Allergy", logs.All()[0].ContextMap()["disease"])
}

func TestLookup_KnowledgeBaseMissingColumnDegrades(t *testing.T) {
	row := func(vals ...string) knowledge.Row {
		r := make(knowledge.Row, len(vals))
		for i, v := range vals {
			r[i] = knowledge.Val(v)
		}
		return r
	}
	tables := knowledge.Tables{
		knowledge.TableDescription: knowledge.NewTable(knowledge.TableDescription, []string{"Disease", "Description"}, row("Flu", "A viral infection.")),
		knowledge.TablePrecautions: knowledge.NewTable(knowledge.TablePrecautions, []string{"Disease", "Precaution_1", "Precaution_2", "Precaution_3", "Precaution_4"}),
		knowledge.TableMedications: knowledge.NewTable(knowledge.TableMedications, []string{"Disease", "Drug"}, row("Flu", "Oseltamivir")),
		knowledge.TableDiets:       knowledge.NewTable(knowledge.TableDiets, []string{"Disease", "Diet"}),
		knowledge.TableWorkout:     knowledge.NewTable(knowledge.TableWorkout, []string{"disease", "workout"}),
		knowledge.TableDiseaseInfo: knowledge.NewTable(knowledge.TableDiseaseInfo, []string{"Disease", "Location", "Season"}, row("Flu", "All", "Winter")),
		knowledge.TableSymptoms:    knowledge.NewTable(knowledge.TableSymptoms, []string{"Disease", "Symptom_1", "Symptom_2", "Symptom_3", "Symptom_4"}),
	}
	kb, err := knowledge.New(tables)
	require.NoError(t, err)

	b := NewAggregator(kb, nil).Lookup("Flu")
	assert.True(t, b.Degraded)
	assert.Equal(t, NoDescription, b.Description)
}
