package domain

import "errors"

// Request invariant violations. These are fatal: the gateway rejects
// the request before any provider is contacted.
var (
	ErrNoTurns   = errors.New("generation request has no turns")
	ErrEmptyTurn = errors.New("generation request has a turn with no parts")
)

// CitationKind distinguishes web search citations from maps citations.
type CitationKind string

const (
	CitationWeb  CitationKind = "web"
	CitationMaps CitationKind = "maps"
)

// Citation is a grounding source reference returned alongside generated
// text when a search or maps tool was active. The fallback provider has
// no grounding capability, so callers must tolerate an empty list.
type Citation struct {
	Kind  CitationKind
	Title string
	URI   string
}

// GenerationResult is the normalized response shape returned for every
// gateway call, regardless of which provider actually served it.
// Text is always present; absence upstream is normalized to "".
type GenerationResult struct {
	Text      string
	Citations []Citation

	// InlineData carries base64 payloads for speech and image
	// capabilities (PCM audio, PNG). Empty for text requests.
	InlineData     string
	InlineMIMEType string

	// RawCandidatePresent records whether the provider returned any
	// candidate at all, which callers use to distinguish "model said
	// nothing" from "response was empty/filtered".
	RawCandidatePresent bool

	// Usage accounting, best effort. Zero when the provider does not
	// report it.
	TokensIn  int
	TokensOut int

	// Provider that ultimately served the call ("gemini" or
	// "openrouter" after a fallback).
	Provider string
}
