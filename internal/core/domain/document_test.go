package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"docx", FormatDOCX},
		{"DOCX", FormatDOCX},
		{".docx", FormatDOCX},
		{"pdf", FormatPDF},
		{".PDF", FormatPDF},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("odt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormat_MIMEType(t *testing.T) {
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		FormatDOCX.MIMEType())
	assert.Equal(t, "application/pdf", FormatPDF.MIMEType())
	assert.Equal(t, "application/octet-stream", Format("odt").MIMEType())
}

func TestFormat_Extension(t *testing.T) {
	assert.Equal(t, "docx", FormatDOCX.Extension())
	assert.Equal(t, "pdf", FormatPDF.Extension())
}

func TestDocument_Heading(t *testing.T) {
	doc := Document{Paragraphs: []Paragraph{
		{Style: "Heading1", Text: "Collect"},
		{Style: "Title", Text: "Christmas Day"},
		{Text: "Saturday 25th December 2021", Italic: true},
	}}

	assert.Equal(t, "Christmas Day", doc.Heading())
	assert.Equal(t, "Collect\nChristmas Day\nSaturday 25th December 2021", doc.Text())
	assert.Empty(t, (&Document{}).Heading())
}
