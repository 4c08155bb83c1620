package streaming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "video/mp4", ContentTypeFor("lectures/intro.mp4"))
	assert.Equal(t, "video/webm", ContentTypeFor("clip.webm"))
	assert.Equal(t, "video/ogg", ContentTypeFor("clip.ogg"))
	assert.Equal(t, "video/quicktime", ContentTypeFor("clip.MOV"))
	assert.Equal(t, "video/x-msvideo", ContentTypeFor("clip.avi"))
	assert.Equal(t, "video/x-matroska", ContentTypeFor("clip.mkv"))

	// Unknown extensions fall back to mp4.
	assert.Equal(t, "video/mp4", ContentTypeFor("clip.bin"))
	assert.Equal(t, "video/mp4", ContentTypeFor("noext"))
}
