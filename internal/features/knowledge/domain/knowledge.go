package domain

// KnowledgeBase maps a topic to the ordered remediation steps known to work for it.
type KnowledgeBase struct {
	Playbooks map[string][]string `yaml:"playbooks" json:"playbooks"`
}

// Empty returns a knowledge base with no playbooks.
func Empty() *KnowledgeBase {
	return &KnowledgeBase{Playbooks: map[string][]string{}}
}

// Steps returns the playbook for topic, or nil when the topic is unknown.
// A nil receiver behaves like an empty knowledge base.
func (kb *KnowledgeBase) Steps(topic string) []string {
	if kb == nil || kb.Playbooks == nil {
		return nil
	}
	return kb.Playbooks[topic]
}

// Len returns the number of playbooks loaded.
func (kb *KnowledgeBase) Len() int {
	if kb == nil {
		return 0
	}
	return len(kb.Playbooks)
}
