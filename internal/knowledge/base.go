package knowledge

import (
	"fmt"
	"strings"
)

// Table names, matching the dataset file stems.
const (
	TableDescription = "description"
	TablePrecautions = "precautions_df"
	TableMedications = "medications"
	TableDiets       = "diets"
	TableWorkout     = "workout_df"
	TableDiseaseInfo = "disease_info"
	TableSymptoms    = "symtoms_df"
)

// RequiredTables lists every table the knowledge base needs, in load order.
var RequiredTables = []string{
	TableDescription,
	TablePrecautions,
	TableMedications,
	TableDiets,
	TableWorkout,
	TableDiseaseInfo,
	TableSymptoms,
}

var (
	symptomColumns    = []string{"Symptom_1", "Symptom_2", "Symptom_3", "Symptom_4"}
	precautionColumns = []string{"Precaution_1", "Precaution_2", "Precaution_3", "Precaution_4"}
)

// keyColumns holds each table's join column. The workout table uses lower case.
var keyColumns = map[string]string{
	TableDescription: "Disease",
	TablePrecautions: "Disease",
	TableMedications: "Disease",
	TableDiets:       "Disease",
	TableWorkout:     "disease",
	TableDiseaseInfo: "Disease",
	TableSymptoms:    "Disease",
}

// scoringColumns must exist at load time; detail columns are checked per lookup.
var scoringColumns = map[string][]string{
	TableDiseaseInfo: {"Location", "Season"},
	TableSymptoms:    symptomColumns,
}

type Tables map[string]*Table

// Details is the descriptive bundle shown for a disease.
type Details struct {
	Description string   `json:"description"`
	Precautions []string `json:"precautions"`
	Medications []string `json:"medications"`
	Diet        []string `json:"diet"`
	Workout     []string `json:"workout"`
}

// Base is the immutable knowledge base. It is safe for concurrent readers.
type Base struct {
	tables   Tables
	diseases []string
}

// New validates the tables and indexes them by disease. The caller must not
// modify the tables afterwards.
func New(tables Tables) (*Base, error) {
	for _, name := range RequiredTables {
		t, ok := tables[name]
		if !ok || t == nil {
			return nil, fmt.Errorf("%s: %w", name, ErrMissingTable)
		}
		if err := t.index(keyColumns[name]); err != nil {
			return nil, err
		}
		for _, col := range scoringColumns[name] {
			if !t.HasColumn(col) {
				return nil, fmt.Errorf("%s.%s: %w", name, col, ErrMissingColumn)
			}
		}
	}

	diseases, err := tables[TableDiseaseInfo].Unique(keyColumns[TableDiseaseInfo])
	if err != nil {
		return nil, err
	}
	return &Base{tables: tables, diseases: diseases}, nil
}

// Diseases returns the distinct disease names of the disease-info table in
// first-seen order. This order is the scorer's tie-break order.
func (b *Base) Diseases() []string {
	out := make([]string, len(b.diseases))
	copy(out, b.diseases)
	return out
}

func (b *Base) rows(table, disease string) []Row {
	t := b.tables[table]
	rows, _ := t.Filter(keyColumns[table], disease)
	return rows
}

// SymptomsOf gathers Symptom_1 across all matching rows, then Symptom_2, and
// so on. Null slots are dropped and duplicates are kept.
func (b *Base) SymptomsOf(disease string) []string {
	t := b.tables[TableSymptoms]
	rows := b.rows(TableSymptoms, disease)
	var out []string
	for _, col := range symptomColumns {
		vals, _ := t.Values(rows, col)
		out = append(out, vals...)
	}
	return out
}

func (b *Base) LocationAffinity(disease string) (string, bool) {
	return b.affinity(disease, "Location")
}

func (b *Base) SeasonAffinity(disease string) (string, bool) {
	return b.affinity(disease, "Season")
}

// affinity reads column from the first disease-info row. A present row with a
// null cell reads as the empty string.
func (b *Base) affinity(disease, column string) (string, bool) {
	rows := b.rows(TableDiseaseInfo, disease)
	if len(rows) == 0 {
		return "", false
	}
	ci, err := b.tables[TableDiseaseInfo].column(column)
	if err != nil {
		return "", false
	}
	return rows[0][ci].Value, true
}

// DetailsOf joins the detail tables on disease. Missing rows give empty
// fields; a table missing one of its value columns is an error.
func (b *Base) DetailsOf(disease string) (Details, error) {
	var d Details

	desc, err := b.column(TableDescription, disease, "Description")
	if err != nil {
		return Details{}, err
	}
	d.Description = strings.Join(desc, " ")

	pt := b.tables[TablePrecautions]
	d.Precautions = []string{}
	for _, r := range b.rows(TablePrecautions, disease) {
		for _, col := range precautionColumns {
			vals, err := pt.Values([]Row{r}, col)
			if err != nil {
				return Details{}, err
			}
			d.Precautions = append(d.Precautions, vals...)
		}
	}

	if d.Medications, err = b.column(TableMedications, disease, "Medication"); err != nil {
		return Details{}, err
	}
	if d.Diet, err = b.column(TableDiets, disease, "Diet"); err != nil {
		return Details{}, err
	}
	if d.Workout, err = b.column(TableWorkout, disease, "workout"); err != nil {
		return Details{}, err
	}
	return d, nil
}

func (b *Base) column(table, disease, column string) ([]string, error) {
	vals, err := b.tables[table].Values(b.rows(table, disease), column)
	if err != nil {
		return nil, fmt.Errorf("details for %q: %w", disease, err)
	}
	return vals, nil
}
