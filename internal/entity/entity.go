package entity

// Args is the uniform argument set of the tool call surface. Each tool
// reads the fields it cares about and ignores the rest. Pointer fields
// distinguish "not supplied" from an explicit zero value.
type Args struct {
	MaxLength      *int   `json:"maxLength,omitempty"`
	Selector       string `json:"selector,omitempty"`
	RemoveScripts  *bool  `json:"removeScripts,omitempty"`
	RemoveComments bool   `json:"removeComments,omitempty"`
	RemoveStyles   bool   `json:"removeStyles,omitempty"`
	RemoveMeta     bool   `json:"removeMeta,omitempty"`
	Minify         bool   `json:"minify,omitempty"`
	CleanHTML      bool   `json:"cleanHtml,omitempty"`
	ID             string `json:"id,omitempty"`
	First          bool   `json:"first,omitempty"`
	Text           string `json:"text,omitempty"`
}

// Result is the uniform tool response: a text block on success or a
// human-readable message on failure. Tool failures are never fatal to
// the host process.
type Result struct {
	OK    bool   `json:"ok"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func Success(text string) Result {
	return Result{OK: true, Text: text}
}

func Failure(message string) Result {
	return Result{OK: false, Error: message}
}
