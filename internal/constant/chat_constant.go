package constant

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"

	ChatModeGlobal       = "global"
	ChatModeSelectedText = "selected_text"

	// Context id recorded on messages answered from user-selected text
	// instead of retrieved chunks.
	SelectedTextContextId = "selected_text"

	IngestStatusSuccess       = "success"
	IngestStatusAlreadyExists = "already_exists"
	IngestStatusError         = "error"

	// Returned to the user when the LLM or retrieval backend fails; the turn
	// still completes and is persisted with this as the assistant message.
	FallbackApology = "Sorry, I encountered an error while generating a response."

	SessionTitleMaxLen        = 50
	FocusedSessionTitleMaxLen = 30
)
