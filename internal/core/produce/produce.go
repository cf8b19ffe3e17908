// Package produce holds the closed label spaces of the two recognition models
// Index lookups are total: an index the table does not cover maps to the sentinel
package produce

// Label is a produce category as emitted by the classifier
type Label string

const (
	// Unidentified is the sentinel for images the classifier could not (or would not) name
	Unidentified Label = "Unidentified"
)

// classifierClasses mirrors the classifier output layer, index for index
var classifierClasses = [...]Label{
	"apple", "banana", "beetroot", "bell pepper", "cabbage", "capsicum", "carrot",
	"cauliflower", "chili pepper", "corn", "cucumber", "eggplant", "garlic", "ginger",
	"grapes", "jalapeno", "kiwi", "lemon", "lettuce", "mango", "onion", "orange", "paprika",
	"pear", "peas", "pineapple", "pomegranate", "potato", "raddish", "soybeans", "spinach",
	"sweet corn", "sweet potato", "tomato", "turnip", "watermelon",
}

var labelIndex = func() map[Label]int {
	m := make(map[Label]int, len(classifierClasses))
	for i, l := range classifierClasses {
		m[l] = i
	}
	return m
}()

// NumClasses is the width of the classifier output layer
const NumClasses = len(classifierClasses)

// LabelAt maps a classifier output index to its label
// out of range indices map to Unidentified
func LabelAt(i int) Label {
	if i < 0 || i >= len(classifierClasses) {
		return Unidentified
	}
	return classifierClasses[i]
}

// Labels returns a copy of the classifier table in output order
func Labels() []Label {
	out := make([]Label, len(classifierClasses))
	copy(out, classifierClasses[:])
	return out
}

// ParseLabel resolves canonical label text, case sensitive
func ParseLabel(s string) (Label, bool) {
	l := Label(s)
	if _, ok := labelIndex[l]; ok {
		return l, true
	}
	return Unidentified, false
}

// Identified reports whether l is a real class rather than the sentinel
func (l Label) Identified() bool {
	_, ok := labelIndex[l]
	return ok
}

func (l Label) String() string { return string(l) }

// Ripeness is the maturity or spoilage state emitted by the ripeness model
type Ripeness string

const (
	// Ripe is ready to eat
	Ripe Ripeness = "Ripe"
	// Rotten is spoiled, results are annotated
	Rotten Ripeness = "Rotten"
	// Unripe is not ready yet
	Unripe Ripeness = "Unripe"

	// Unknown covers a ripeness model that could not run and unidentified items
	Unknown Ripeness = "Unknown"
)

// ripenessClasses mirrors the ripeness output layer
var ripenessClasses = [...]Ripeness{Ripe, Rotten, Unripe}

// NumRipenessClasses is the width of the ripeness output layer
const NumRipenessClasses = len(ripenessClasses)

// RipenessAt maps a ripeness output index to its state
// out of range indices map to Unknown
func RipenessAt(i int) Ripeness {
	if i < 0 || i >= len(ripenessClasses) {
		return Unknown
	}
	return ripenessClasses[i]
}

// ParseRipeness resolves ripeness text, case sensitive, Unknown included
func ParseRipeness(s string) (Ripeness, bool) {
	switch r := Ripeness(s); r {
	case Ripe, Rotten, Unripe, Unknown:
		return r, true
	}
	return Unknown, false
}

func (r Ripeness) String() string { return string(r) }
