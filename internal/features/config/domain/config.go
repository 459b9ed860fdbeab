package domain

// AppConfig represents the application configuration.
type AppConfig struct {
	Title             string      `json:"title"`
	Caption           string      `json:"caption"`
	Topics            []string    `json:"topics"`
	SystemPrompt      string      `json:"system_prompt"`
	KnowledgeBasePath string      `json:"knowledge_base_path"`
	ListenAddr        string      `json:"listen_addr"`
	HelpText          []string    `json:"help_text"`
	Tips              string      `json:"tips"`
	ModelParams       ModelParams `json:"model_params"`
}

// ModelParams defines the parameters for the AI model.
type ModelParams struct {
	Provider    string  `json:"provider"` // "openai", "anthropic", "gemini"
	Model       string  `json:"model"`
	Temperature *float64 `json:"temperature,omitempty"` // nil means unset; 0 is a valid setting
	MaxTokens   int      `json:"max_tokens"`
}

// SamplingTemperature returns the configured temperature, or def when unset.
func (p ModelParams) SamplingTemperature(def float64) float64 {
	if p.Temperature == nil {
		return def
	}
	return *p.Temperature
}

// PublicConfig is the subset of AppConfig the form is allowed to see.
type PublicConfig struct {
	Title    string   `json:"title"`
	Caption  string   `json:"caption"`
	Topics   []string `json:"topics"`
	Modes    []string `json:"modes"`
	HelpText []string `json:"help_text"`
	Tips     string   `json:"tips"`
	Provider string   `json:"provider"`
	Model    string   `json:"model"`
}

// Public strips everything that should not leave the server. Modes are fixed
// by the helpdesk feature and passed in.
func (c *AppConfig) Public(modes []string) PublicConfig {
	return PublicConfig{
		Title:    c.Title,
		Caption:  c.Caption,
		Topics:   append([]string(nil), c.Topics...),
		Modes:    append([]string(nil), modes...),
		HelpText: append([]string(nil), c.HelpText...),
		Tips:     c.Tips,
		Provider: c.ModelParams.Provider,
		Model:    c.ModelParams.Model,
	}
}
