package domain

import "time"

// VersionMeta carries the identity/version fields shared by every versioned
// entity. Exactly one version per UID is active at any time; versions start
// at 1 and only ever grow; superseded rows keep their content forever.
type VersionMeta struct {
	UID           int64
	Version       int
	IsActive      bool
	CreatedAt     time.Time
	LastUpdatedOn time.Time
}

// Identity returns the stable identity of the entity. Promoted to every
// versioned type, which lets generic code reach the uid without reflection.
func (m VersionMeta) Identity() int64 { return m.UID }

// Language is a catalog entry for a natural language, identified by ISO code
// plus an optional dialect qualifier.
type Language struct {
	VersionMeta
	Code    string
	Dialect *string
	Name    string
}

// TextDomain is a catalog entry for a subject domain (news, web-crawl,
// social, ...) a sentence was collected from.
type TextDomain struct {
	VersionMeta
	Code        string
	Description *string
}

// Source is a catalog entry recording where text came from. Metadata holds
// free-form provenance captured at ingest time (license, citation, readme).
type Source struct {
	VersionMeta
	Type     string
	Name     string
	Author   *string
	URL      *string
	Metadata map[string]any
}

// Method is a catalog entry for a translation method (human, corpus
// alignment, a specific MT system).
type Method struct {
	VersionMeta
	Name        string
	Description *string
	Provider    *string
}

// Metric is a catalog entry for a scoring metric (BLEU, chrF, human rating).
type Metric struct {
	VersionMeta
	Name        string
	Description *string
}

// Direction is an ordered language pair, e.g. "en2ja". Both ends reference
// Language by UID and resolve to whichever version is currently active.
type Direction struct {
	VersionMeta
	Code          string
	SourceLangUID int64
	TargetLangUID int64
	Description   *string
}
