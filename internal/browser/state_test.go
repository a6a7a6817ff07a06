package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcknowledged_ReturnsContinuation(t *testing.T) {
	next := EditorState("/d/a.png")
	state := ShowErrorState("boom", &next)

	resolved := state.Acknowledged()
	assert.Equal(t, ModeEditor, resolved.Mode)
	assert.Equal(t, "/d/a.png", resolved.Path)
}

func TestAcknowledged_NilNextFallsBackToBrowser(t *testing.T) {
	state := ShowErrorState("boom", nil)
	assert.Equal(t, ModeBrowser, state.Acknowledged().Mode)
}

func TestAcknowledged_NoOpOutsideShowError(t *testing.T) {
	for _, state := range []AppState{
		BrowserState(),
		EditorState("/d/a.png"),
		RenameConfirmState("/d/a.png", "/d/b.png"),
		DeletePromptState("/d/a.png"),
		UploadPromptState("/d/a.png"),
		UploadingState("/d/a.png"),
		ConfigurationState(),
	} {
		assert.Equal(t, state, state.Acknowledged(), "mode %s", state.Mode)
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "browser", ModeBrowser.String())
	assert.Equal(t, "uploading", ModeUploading.String())
	assert.Equal(t, "mode(99)", Mode(99).String())
}
