package browser

import "fmt"

// Mode identifies which UI screen is active. Exactly one mode is
// current at any time; transitions are the only way it changes.
type Mode int

const (
	// ModeBrowser shows the paginated thumbnail grid.
	ModeBrowser Mode = iota
	// ModeEditor shows a single file with rename/delete/upload actions.
	ModeEditor
	// ModeRenameConfirm asks the user to confirm a pending rename.
	ModeRenameConfirm
	// ModeDeletePrompt asks the user to confirm a deletion.
	ModeDeletePrompt
	// ModeUploadPrompt asks the user to confirm an upload.
	ModeUploadPrompt
	// ModeUploading waits for the worker to finish an upload.
	ModeUploading
	// ModeShowError displays a message with an optional state to
	// return to after acknowledgement.
	ModeShowError
	// ModeConfiguration shows the settings screen.
	ModeConfiguration
)

func (m Mode) String() string {
	switch m {
	case ModeBrowser:
		return "browser"
	case ModeEditor:
		return "editor"
	case ModeRenameConfirm:
		return "rename-confirm"
	case ModeDeletePrompt:
		return "delete-prompt"
	case ModeUploadPrompt:
		return "upload-prompt"
	case ModeUploading:
		return "uploading"
	case ModeShowError:
		return "show-error"
	case ModeConfiguration:
		return "configuration"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// AppState is the tagged union of UI modes. Only the fields relevant
// to the Mode are populated; it moves by value so transitions hand
// ownership over instead of sharing.
type AppState struct {
	Mode    Mode
	Path    string    // Editor, RenameConfirm, DeletePrompt, UploadPrompt, Uploading
	NewPath string    // RenameConfirm
	Message string    // ShowError
	Next    *AppState // ShowError: state to return to, nil means Browser
}

// BrowserState is the initial state
func BrowserState() AppState {
	return AppState{Mode: ModeBrowser}
}

// EditorState opens the editor on a file
func EditorState(path string) AppState {
	return AppState{Mode: ModeEditor, Path: path}
}

// RenameConfirmState asks to rename path to newPath
func RenameConfirmState(path, newPath string) AppState {
	return AppState{Mode: ModeRenameConfirm, Path: path, NewPath: newPath}
}

// DeletePromptState asks to delete path
func DeletePromptState(path string) AppState {
	return AppState{Mode: ModeDeletePrompt, Path: path}
}

// UploadPromptState asks to upload path
func UploadPromptState(path string) AppState {
	return AppState{Mode: ModeUploadPrompt, Path: path}
}

// UploadingState waits for the worker's upload outcome
func UploadingState(path string) AppState {
	return AppState{Mode: ModeUploading, Path: path}
}

// ShowErrorState surfaces a message; next is where acknowledgement
// returns to (nil falls back to the browser).
func ShowErrorState(message string, next *AppState) AppState {
	return AppState{Mode: ModeShowError, Message: message, Next: next}
}

// ConfigurationState opens the settings screen
func ConfigurationState() AppState {
	return AppState{Mode: ModeConfiguration}
}

// Acknowledged resolves a ShowError into its continuation. On any
// other mode it returns the state unchanged, keeping the transition
// total.
func (s AppState) Acknowledged() AppState {
	if s.Mode != ModeShowError {
		return s
	}
	if s.Next != nil {
		return *s.Next
	}
	return BrowserState()
}
