package domain

// SentenceStatus marks the review state of a sentence row.
type SentenceStatus string

const (
	SentenceStatusActive    SentenceStatus = "active"
	SentenceStatusDuplicate SentenceStatus = "duplicate"
)

// Sentence is an atomic text unit in one language. ID is its stable identity;
// the text of a given version never changes — revisions append a new version.
type Sentence struct {
	VersionMeta
	Text           string
	TextNormalized string
	ContentHash    string
	LanguageUID    int64
	SourceUID      *int64
	DomainUID      *int64
	Status         SentenceStatus
	DuplicateOf    *int64
}

// Translation links two sentences in a given direction. Several translations
// may exist for the same pair (different methods, or the same method re-run
// with another MethodVersion label).
type Translation struct {
	VersionMeta
	SourceID      int64
	TargetID      int64
	DirectionUID  int64
	MethodUID     int64
	MethodVersion *string
	IsSynthetic   bool
}

// TranslationScore attaches one metric's score to a translation. At least one
// of ScoreNum/ScoreTxt is populated. Version numbers are scoped to the
// (TranslationID, MetricUID) pair, not to the row id.
type TranslationScore struct {
	VersionMeta
	TranslationID int64
	MetricUID     int64
	ScoreNum      *float64
	ScoreTxt      *string
}

// DuplicatePair points a later duplicate sentence at its first occurrence.
type DuplicatePair struct {
	ID         int64
	OriginalID int64
}

// SentenceFilter contains filtering/pagination parameters for sentence search.
type SentenceFilter struct {
	LanguageUID *int64
	DomainUID   *int64
	SourceUID   *int64
	Search      *string
	Limit       int
	Offset      int
}
