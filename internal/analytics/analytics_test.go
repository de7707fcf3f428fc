package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/evalflow/internal/models"
	"github.com/spacesedan/evalflow/internal/recoder"
)

func sampleRecords(t *testing.T) []models.RecodedRecord {
	t.Helper()
	header := []string{"Clave", "Nombre y Email", "Prog", "Res1", "Res2", "Res3", "Observ1", "Observ2", "Observ3"}
	rows := [][]string{
		{"1", "Ana Ruiz - ana@uni.edu", "ING", "BUENO", "MUY BUENO", "No disponible", "Excelente trabajo en equipo (p)", "", "Llega tarde (n)"},
		{"2", "Luis Paz - luis@uni.edu", "MED", "INSUFICIENTE", "ACEPTABLE", "BUENO", "No entrega (n)", "Buen progreso (p)", ""},
		{"3", "Eva Sol - eva@uni.edu", "ING", "BUENO", "No disponible", "SOBRESALIENTE", "Trabajo constante", "Excelente trabajo (p)", "Gran actitud (p)"},
		{"4", "Ana Ruiz - ana@uni.edu", "ADM", "EXCELENTE", "", "BUENO", "", "", ""},
	}
	out, err := recoder.RecodeBatch(header, rows)
	require.NoError(t, err)
	return out
}

func TestFilterByProgram(t *testing.T) {
	records := sampleRecords(t)

	assert.Len(t, FilterByProgram(records, nil), 4)
	ing := FilterByProgram(records, []string{"ING"})
	require.Len(t, ing, 2)
	assert.Equal(t, "1", ing[0].Source.Key)
	assert.Equal(t, "3", ing[1].Source.Key)
	assert.Empty(t, FilterByProgram(records, []string{"DER"}))
}

func TestProgramsAndStudents(t *testing.T) {
	records := sampleRecords(t)

	assert.Equal(t, []string{"ADM", "ING", "MED"}, Programs(records))
	assert.Equal(t, []string{"Ana Ruiz - ana@uni.edu", "Eva Sol - eva@uni.edu", "Luis Paz - luis@uni.edu"}, Students(records))

	rec, ok := FindStudent(records, "Ana Ruiz - ana@uni.edu")
	require.True(t, ok)
	assert.Equal(t, "1", rec.Source.Key)

	_, ok = FindStudent(records, "nobody")
	assert.False(t, ok)

	assert.Equal(t, "Ana Ruiz", DisplayName("Ana Ruiz - ana@uni.edu"))
	assert.Equal(t, "Sin correo", DisplayName("Sin correo"))
}

func TestDescribe(t *testing.T) {
	one, two, three, four := 1, 2, 3, 4

	t.Run("skips missing scores", func(t *testing.T) {
		st := Describe([]*int{&one, nil, &two, &three, &four, nil})
		assert.Equal(t, 4, st.Count)
		assert.Equal(t, 2, st.Missing)
		assert.False(t, st.Insufficient)
		assert.InDelta(t, 2.5, st.Mean, 1e-12)
		assert.InDelta(t, 1.2909944487, st.Std, 1e-9)
		assert.Equal(t, 1.0, st.Min)
		assert.Equal(t, 4.0, st.Max)
		assert.InDelta(t, 1.75, st.P25, 1e-12)
		assert.InDelta(t, 2.5, st.Median, 1e-12)
		assert.InDelta(t, 3.25, st.P75, 1e-12)
	})

	t.Run("all missing is insufficient", func(t *testing.T) {
		st := Describe([]*int{nil, nil})
		assert.True(t, st.Insufficient)
		assert.Equal(t, 0, st.Count)
		assert.Equal(t, 2, st.Missing)
		assert.Zero(t, st.Mean)
	})

	t.Run("single score", func(t *testing.T) {
		st := Describe([]*int{&three})
		assert.Equal(t, 3.0, st.Mean)
		assert.Zero(t, st.Std)
		assert.Equal(t, 3.0, st.Median)
	})
}

func TestDescribeResults(t *testing.T) {
	stats := DescribeResults(sampleRecords(t))

	assert.Equal(t, 3, stats[0].Count)
	assert.Equal(t, 1, stats[0].Missing)
	assert.InDelta(t, 7.0/3, stats[0].Mean, 1e-12)

	assert.Equal(t, 2, stats[1].Count)
	assert.Equal(t, 2, stats[1].Missing)
	assert.InDelta(t, 3.0, stats[1].Mean, 1e-12)
}

func TestLabelDistribution(t *testing.T) {
	dist := LabelDistribution(sampleRecords(t), 0)
	assert.Equal(t, []models.LabelCount{
		{Label: "INSUFICIENTE", Count: 1},
		{Label: "BUENO", Count: 2},
	}, dist)

	dist = LabelDistribution(sampleRecords(t), 1)
	assert.Equal(t, []models.LabelCount{
		{Label: "ACEPTABLE", Count: 1},
		{Label: "MUY BUENO", Count: 1},
		{Label: "No disponible", Count: 1},
	}, dist)
}

func TestSentimentCounts(t *testing.T) {
	sum := SentimentCounts(sampleRecords(t))
	assert.Equal(t, 4, sum.Positive)
	assert.Equal(t, 2, sum.Negative)
	require.NotNil(t, sum.PositiveRate)
	assert.InDelta(t, 4.0/6, *sum.PositiveRate, 1e-12)

	empty := SentimentCounts(nil)
	assert.Nil(t, empty.PositiveRate)
}

func TestCrossTab(t *testing.T) {
	rows := CrossTab(sampleRecords(t), 0)
	assert.Equal(t, []models.CrossTabRow{
		{Label: "INSUFICIENTE", Negative: 1},
		{Label: "BUENO", Positive: 1},
	}, rows)

	rows = CrossTab(sampleRecords(t), 2)
	assert.Equal(t, []models.CrossTabRow{
		{Label: "SOBRESALIENTE", Positive: 1},
		{Label: "No disponible", Negative: 1},
	}, rows)
}

func TestCompare(t *testing.T) {
	records := sampleRecords(t)

	results := CompareResults(records)
	require.Len(t, results, 3)
	assert.Equal(t, "Res1", results[0].Field)
	assert.Equal(t, map[string]int{"BUENO": 2, "INSUFICIENTE": 1, "EXCELENTE": 1}, results[0].Counts)
	assert.Equal(t, map[string]int{"MUY BUENO": 1, "ACEPTABLE": 1, "No disponible": 1}, results[1].Counts)

	sentiment := CompareSentiment(records)
	assert.Equal(t, "Observ2", sentiment[1].Field)
	assert.Equal(t, map[string]int{"positive": 2}, sentiment[1].Counts)
	assert.Equal(t, map[string]int{"positive": 1, "negative": 1}, sentiment[0].Counts)
}

func TestWordFrequencies(t *testing.T) {
	words := WordFrequencies(ObservationTexts(sampleRecords(t)), 3)
	assert.Equal(t, []models.WordCount{
		{Word: "trabajo", Count: 3},
		{Word: "excelente", Count: 2},
		{Word: "actitud", Count: 1},
	}, words)

	all := WordFrequencies([]string{"Él y ÉL", "a b"}, 0)
	assert.Equal(t, []models.WordCount{{Word: "él", Count: 2}}, all)
}

func TestCompareLexical(t *testing.T) {
	records := []models.RecodedRecord{{
		Observations: [3]models.Observation{
			{Text: "Great and wonderful attitude", Tag: models.SentimentPositive},
			{Text: "Terrible, awful behaviour", Tag: models.SentimentNegative},
			{Text: "whatever", Tag: models.SentimentNeutral},
		},
	}}
	agg := CompareLexical(records)
	assert.Equal(t, 2, agg.Compared)
	assert.Equal(t, 2, agg.Agreed)
	require.NotNil(t, agg.Rate)
	assert.Equal(t, 1.0, *agg.Rate)

	assert.Nil(t, CompareLexical(nil).Rate)
}
