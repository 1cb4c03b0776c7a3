package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		metadata map[string]any
		body     string
		wantErr  error
	}{
		{
			name:     "with frontmatter",
			content:  "---\nSubject: Hello\n---\nBody text",
			metadata: map[string]any{"Subject": "Hello"},
			body:     "Body text",
		},
		{
			name:     "crlf line endings",
			content:  "---\r\nSubject: Hello\r\n---\r\nBody",
			metadata: map[string]any{"Subject": "Hello"},
			body:     "Body",
		},
		{
			name:     "no frontmatter",
			content:  "Just markdown",
			metadata: map[string]any{},
			body:     "Just markdown",
		},
		{
			name:     "empty frontmatter",
			content:  "---\n---\nBody",
			metadata: map[string]any{},
			body:     "Body",
		},
		{
			name:    "unclosed frontmatter",
			content: "---\nSubject: Hello\nBody",
			wantErr: ErrInvalidFrontmatter,
		},
		{
			name:    "invalid yaml",
			content: "---\nSubject: [unclosed\n---\nBody",
			wantErr: ErrInvalidFrontmatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := ParseTemplate([]byte(tt.content))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.metadata, tmpl.Metadata)
			assert.Equal(t, tt.body, tmpl.Body)
		})
	}
}
