package recoder

import "github.com/spacesedan/evalflow/internal/models"

var ordinalScale = map[string]int{
	models.LabelUnsatisfactory: 1,
	models.LabelAcceptable:     2,
	models.LabelGood:           3,
	models.LabelVeryGood:       4,
	models.LabelOutstanding:    5,
}

// MapLabel returns the ordinal value of an evaluation label. "No disponible"
// and anything outside the scale report ok=false; there is no zero default.
func MapLabel(label string) (int, bool) {
	v, ok := ordinalScale[label]
	return v, ok
}

func scoreOf(label string) *int {
	v, ok := MapLabel(label)
	if !ok {
		return nil
	}
	return &v
}
