package models

// Column names of the evaluation sheet.
const (
	ColumnKey       = "Clave"
	ColumnNameEmail = "Nombre y Email"
	ColumnProgram   = "Prog"
)

// ResultFields is the number of Res/Observ column pairs per record.
const ResultFields = 3

// ResultColumns and ObservationColumns are indexed the same way as
// EvaluationRecord.Results and EvaluationRecord.Observations.
var (
	ResultColumns      = [ResultFields]string{"Res1", "Res2", "Res3"}
	ObservationColumns = [ResultFields]string{"Observ1", "Observ2", "Observ3"}
)

// Ordinal labels, in ascending order.
const (
	LabelUnsatisfactory = "INSUFICIENTE"
	LabelAcceptable     = "ACEPTABLE"
	LabelGood           = "BUENO"
	LabelVeryGood       = "MUY BUENO"
	LabelOutstanding    = "SOBRESALIENTE"
	LabelUnavailable    = "No disponible"
)

// LabelOrder is the display order used by distributions and cross tables.
var LabelOrder = []string{
	LabelUnsatisfactory,
	LabelAcceptable,
	LabelGood,
	LabelVeryGood,
	LabelOutstanding,
	LabelUnavailable,
}

type SentimentTag string

const (
	SentimentPositive SentimentTag = "positive"
	SentimentNegative SentimentTag = "negative"
	SentimentNeutral  SentimentTag = "neutral"
)

// EvaluationRecord is one row of the evaluation sheet. An empty observation
// means the cell was absent.
type EvaluationRecord struct {
	Key          string               `json:"key"`
	NameEmail    string               `json:"name_email"`
	Program      string               `json:"program"`
	Results      [ResultFields]string `json:"results"`
	Observations [ResultFields]string `json:"observations"`
}

// Observation is a free-text field after its polarity marker has been parsed
// out. Tag is decided before the marker is stripped from Text.
type Observation struct {
	Text string       `json:"text"`
	Tag  SentimentTag `json:"tag"`
}

// RecodedRecord carries the source record untouched next to its derived fields.
// A nil score means the label had no numeric value.
type RecodedRecord struct {
	Source          EvaluationRecord          `json:"source"`
	Scores          [ResultFields]*int        `json:"scores"`
	Observations    [ResultFields]Observation `json:"observations"`
	FullObservation string                    `json:"full_observation"`
}

// Tags returns the sentiment tag of every observation field.
func (r RecodedRecord) Tags() [ResultFields]SentimentTag {
	var tags [ResultFields]SentimentTag
	for i, o := range r.Observations {
		tags[i] = o.Tag
	}
	return tags
}

// Cleaned returns the marker-free text of every observation field.
func (r RecodedRecord) Cleaned() [ResultFields]string {
	var texts [ResultFields]string
	for i, o := range r.Observations {
		texts[i] = o.Text
	}
	return texts
}
