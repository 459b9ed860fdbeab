package domain

import "time"

// Mode selects which task instruction closes the prompt.
type Mode string

const (
	ModeChecklist Mode = "Troubleshoot checklist"
	ModeReply     Mode = "Draft customer reply"
)

// Modes lists the selectable modes in display order. The first is the default.
var Modes = []Mode{ModeChecklist, ModeReply}

// Topics lists the default topic choices in display order.
var Topics = []string{"Server boot", "Networking", "Storage", "GPU rack", "Cabling", "Other"}

// ParseMode reports whether s names a known mode.
func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes {
		if string(m) == s {
			return m, true
		}
	}
	return ModeChecklist, false
}

// ModeNames returns Modes as plain strings.
func ModeNames() []string {
	out := make([]string, 0, len(Modes))
	for _, m := range Modes {
		out = append(out, string(m))
	}
	return out
}

// SessionInput is what one press of Generate carries.
type SessionInput struct {
	Mode      Mode   `json:"mode"`
	Topic     string `json:"topic"`
	IssueText string `json:"issue_text"`
}

// Result is the outcome of one generation. Nothing here outlives the request.
type Result struct {
	Prompt      string    `json:"prompt"`
	Output      string    `json:"output"`
	Report      string    `json:"report"`
	Filename    string    `json:"filename"`
	GeneratedAt time.Time `json:"generated_at"`
}

// GenerateRequest is the JSON body accepted by the generate API.
type GenerateRequest struct {
	Mode      string `json:"mode"`
	Topic     string `json:"topic" binding:"required"`
	IssueText string `json:"issue_text"`
}

// DownloadRequest carries a previously generated result back for download.
type DownloadRequest struct {
	Mode        string `form:"mode"`
	Topic       string `form:"topic"`
	IssueText   string `form:"issue_text"`
	Output      string `form:"output"`
	GeneratedAt string `form:"generated_at"`
}
