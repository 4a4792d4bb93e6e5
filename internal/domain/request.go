package domain

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// OutputMode selects between free prose and machine-parseable JSON output.
type OutputMode int

const (
	OutputModePlain OutputMode = iota
	OutputModeJSON
)

// Capability identifies what kind of content a request generates.
// The fallback provider only supports text and vision; image, video and
// speech requests must never be replayed against it.
type Capability int

const (
	CapabilityText Capability = iota
	CapabilityVision
	CapabilitySpeech
	CapabilityImage
	CapabilityVideo
)

// String returns a short identifier used in logs and the usage ledger.
func (c Capability) String() string {
	switch c {
	case CapabilityText:
		return "text"
	case CapabilityVision:
		return "vision"
	case CapabilitySpeech:
		return "speech"
	case CapabilityImage:
		return "image"
	case CapabilityVideo:
		return "video"
	default:
		return "unknown"
	}
}

// Part is one element of a turn's content. It is a closed union:
// TextPart or InlineDataPart. Translators match exhaustively on the
// concrete type instead of sniffing shapes at runtime.
type Part interface {
	isPart()
}

// TextPart carries plain prompt text.
type TextPart struct {
	Text string
}

func (TextPart) isPart() {}

// InlineDataPart carries base64-encoded binary data, typically a crop
// photo. MIMEType must be one the providers recognize (image/jpeg,
// image/png, image/webp).
type InlineDataPart struct {
	MIMEType string
	Data     string // raw base64, no data-URI prefix
}

func (InlineDataPart) isPart() {}

// Turn is one entry in the conversation history.
type Turn struct {
	Role  Role
	Parts []Part
}

// Tools flags which grounding tools the provider should enable.
type Tools struct {
	WebSearch     bool
	MapsGrounding bool
}

// GenerationRequest is the provider-agnostic description of one
// generation call. The gateway owns it only for the duration of the
// call; requests carry no state between calls.
type GenerationRequest struct {
	Model             string
	SystemInstruction string
	Turns             []Turn
	OutputMode        OutputMode
	Tools             Tools
	Capability        Capability

	// Speech-only settings.
	Voice string

	// Image-generation-only settings.
	AspectRatio string
}

// HasImageParts reports whether any turn carries inline image data.
// The fallback provider routes vision and text traffic to different
// models, so the translator needs this before selecting one.
func (r GenerationRequest) HasImageParts() bool {
	for _, turn := range r.Turns {
		for _, part := range turn.Parts {
			if _, ok := part.(InlineDataPart); ok {
				return true
			}
		}
	}
	return false
}

// Validate checks the request invariants: at least one turn with at
// least one part.
func (r GenerationRequest) Validate() error {
	if len(r.Turns) == 0 {
		return ErrNoTurns
	}
	for _, turn := range r.Turns {
		if len(turn.Parts) == 0 {
			return ErrEmptyTurn
		}
	}
	return nil
}

// NewUserTextRequest builds the common single-turn prose request.
func NewUserTextRequest(model, text string) GenerationRequest {
	return GenerationRequest{
		Model: model,
		Turns: []Turn{
			{Role: RoleUser, Parts: []Part{TextPart{Text: text}}},
		},
	}
}
