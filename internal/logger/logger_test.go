package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestVerboseLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func(string, ...any)
		want string
	}{
		{"debug", Debug, `level=DEBUG msg="feast Christmas Day"`},
		{"info", Info, `level=INFO msg="feast Christmas Day"`},
		{"warn", Warn, `level=WARN msg="feast Christmas Day"`},
		{"error", Error, `level=ERROR msg="feast Christmas Day"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)

			tt.log("feast %s", "Christmas Day")

			assert.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

func TestQuietByDefault(t *testing.T) {
	buf := capture(t, false)

	Debug("debug")
	Info("info")
	Warn("warn")
	Section("export")

	assert.Empty(t, buf.String())
}

func TestError_AlwaysWritten(t *testing.T) {
	buf := capture(t, false)

	Error("conversion of %q failed", "St Stephen")

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `conversion of \"St Stephen\" failed`)
	assert.NotContains(t, buf.String(), "time=")
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("export")

	assert.Equal(t, "level=DEBUG msg=section name=export\n", buf.String())
}

func TestLogger_FollowsOutput(t *testing.T) {
	buf := capture(t, true)

	Logger().Info("direct", "feast", "Easter")

	assert.Equal(t, "level=INFO msg=direct feast=Easter\n", buf.String())
}
