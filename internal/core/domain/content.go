package domain

type ContentID string

// ContentSource tells where the media bytes live. Only local content is
// served by the range streamer; external content (e.g. an embedded player
// URL) is delivered by the UI directly.
type ContentSource string

const (
	SourceLocal    ContentSource = "local"
	SourceExternal ContentSource = "external"
)

// Content is a streamable media item resolved from a content identifier.
// Path is relative to the configured media root.
type Content struct {
	ID            ContentID
	Title         string
	Path          string
	Source        ContentSource
	ThumbnailPath string
}
