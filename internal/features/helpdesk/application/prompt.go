package application

import (
	"fmt"
	"strings"

	"helpdesk-assistant/internal/features/helpdesk/domain"
	kb "helpdesk-assistant/internal/features/knowledge/domain"
)

const (
	NoKnownSteps = "No known steps."

	ChecklistTask = "Return a short numbered checklist for an L1 or L2 technician. " +
		"Be specific and safety aware. " +
		"If escalation is needed, list exactly what logs, photos, and metrics to collect. " +
		"Keep sentences short."

	ReplyTask = "Write a short professional customer reply. " +
		"Acknowledge the issue, list the next steps, request any needed info, and set a basic expectation. " +
		"Use plain language."
)

// BuildPrompt assembles the instruction sent to the model. It is pure: the
// same inputs always give the same string.
func BuildPrompt(mode domain.Mode, topic, issueText string, knowledge *kb.KnowledgeBase) string {
	header := fmt.Sprintf("You are an experienced data center technician. Mode: %s. Topic: %s.", mode, topic)

	return header + "\n\n" +
		"Issue:\n" + issueText + "\n\n" +
		knowledgeSection(knowledge.Steps(topic)) + "\n\n" +
		"Task:\n" + taskFor(mode) + "\n"
}

func knowledgeSection(steps []string) string {
	if len(steps) == 0 {
		return NoKnownSteps
	}
	var b strings.Builder
	b.WriteString("Known good steps for this topic:")
	for _, s := range steps {
		b.WriteString("\n- ")
		b.WriteString(s)
	}
	return b.String()
}

// taskFor defaults to the checklist for anything but the reply mode.
func taskFor(mode domain.Mode) string {
	if mode == domain.ModeReply {
		return ReplyTask
	}
	return ChecklistTask
}
