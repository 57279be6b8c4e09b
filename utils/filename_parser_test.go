package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageFileName(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"HAR-000-1.png", "HAR-000-1"},
		{"har-000-1.jpg", "HAR-000-1"},
		{"ACE15.jpeg", "ACE15"},
		{"  QUE-CRE.PNG  ", "QUE-CRE"},
	}

	for _, tc := range cases {
		code, err := ParseImageFileName(tc.filename)
		require.NoError(t, err, "filename %q", tc.filename)
		assert.Equal(t, tc.want, code)
	}
}

func TestParseImageFileNameRejectsUnrelatedFiles(t *testing.T) {
	for _, filename := range []string{
		"notes.txt",
		"HAR-000-1.gif",
		"HAR 000 1.png",
		".png",
		"-HAR.png",
		"catalog.pdf",
		"",
	} {
		_, err := ParseImageFileName(filename)
		assert.Error(t, err, "filename %q", filename)
	}
}
