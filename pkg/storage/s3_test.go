package storage

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAttachmentType(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/webp", "image/gif", "application/pdf", "IMAGE/PNG"} {
		assert.True(t, ValidateAttachmentType(ct), ct)
	}
	for _, ct := range []string{"", "text/html", "application/zip", "video/mp4"} {
		assert.False(t, ValidateAttachmentType(ct), ct)
	}
}

func TestAttachmentKey(t *testing.T) {
	keyPattern := regexp.MustCompile(`^inquiries/[0-9a-f-]{36}\.png$`)

	key := AttachmentKey("Screenshot.PNG")
	assert.Regexp(t, keyPattern, key)

	// keys never repeat for the same filename
	assert.NotEqual(t, key, AttachmentKey("Screenshot.PNG"))

	// extension-less names still get a valid key
	bare := AttachmentKey("receipt")
	assert.True(t, strings.HasPrefix(bare, "inquiries/"))
	assert.NotContains(t, bare, ".")
}
