package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configapp "helpdesk-assistant/internal/features/config/application"
	"helpdesk-assistant/internal/features/helpdesk/application"
	"helpdesk-assistant/internal/features/helpdesk/domain"
	"helpdesk-assistant/internal/features/helpdesk/infrastructure"
	kb "helpdesk-assistant/internal/features/knowledge/domain"
)

type stubClient struct {
	out     string
	prompts []string
}

func (s *stubClient) Complete(_ context.Context, req infrastructure.CompletionRequest) (string, error) {
	s.prompts = append(s.prompts, req.Prompt)
	return s.out, nil
}
func (s *stubClient) Provider() string      { return "OpenAI" }
func (s *stubClient) CredentialEnv() string { return "OPENAI_API_KEY" }

func newTestRouter(t *testing.T, client infrastructure.AIClient) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := configapp.Defaults()
	knowledge := &kb.KnowledgeBase{Playbooks: map[string][]string{"Networking": {"Check link lights", "Reseat the optic"}}}
	svc := application.NewHelpdeskService(cfg.Title, knowledge, application.NewAssistant(client, cfg.SystemPrompt, cfg.ModelParams.SamplingTemperature(configapp.DefaultTemperature), 0, nil), nil)
	h := NewHelpdeskHandler(svc, cfg, nil)

	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.GET("/", h.IndexHandler)
	r.POST("/generate", h.GenerateFormHandler)
	r.POST("/download", h.DownloadHandler)
	r.POST("/api/helpdesk/generate", h.GenerateAPIHandler)
	return r
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndexHandler(t *testing.T) {
	r := newTestRouter(t, &stubClient{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<h1>AI Helpdesk Assistant</h1>")
	for _, topic := range domain.Topics {
		assert.Contains(t, body, `value="`+topic+`"`)
	}
	assert.Contains(t, body, `value="Troubleshoot checklist" checked`)
	assert.Contains(t, body, `value="Draft customer reply">`)
	assert.Contains(t, body, "Example: Node does not POST after RAM replacement")
	assert.NotContains(t, body, `id="result"`)
}

func TestGenerateFormHandler(t *testing.T) {
	client := &stubClient{out: "1. Check the optic"}
	r := newTestRouter(t, client)

	w := postForm(r, "/generate", url.Values{
		"topic":      {"Networking"},
		"mode":       {"Draft customer reply"},
		"issue_text": {"link down"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Mode: Draft customer reply. Topic: Networking.")
	assert.Contains(t, client.prompts[0], "- Reseat the optic")

	body := w.Body.String()
	assert.Contains(t, body, `<div class="result" id="result"><ol>`)
	assert.Contains(t, body, "<li>Check the optic</li>")
	assert.Contains(t, body, `action="/download"`)
	assert.Contains(t, body, `<option value="Networking" selected>`)
}

func TestGenerateFormHandler_UnknownSelectionsFallBack(t *testing.T) {
	client := &stubClient{out: "ok"}
	r := newTestRouter(t, client)

	w := postForm(r, "/generate", url.Values{"topic": {"Mainframe"}, "mode": {"Poem"}})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Mode: Troubleshoot checklist. Topic: Server boot.")
	assert.Contains(t, client.prompts[0], application.NoKnownSteps)
}

func TestDownloadHandler(t *testing.T) {
	r := newTestRouter(t, &stubClient{})

	w := postForm(r, "/download", url.Values{
		"mode":         {"Troubleshoot checklist"},
		"topic":        {"Storage"},
		"issue_text":   {"disk 3 amber"},
		"output":       {"1. Check RAID"},
		"generated_at": {"20261017-080910"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="helpdesk_20261017-080910.md"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/markdown"))
	assert.Equal(t,
		application.BuildReport("AI Helpdesk Assistant", domain.ModeChecklist, "Storage", "disk 3 amber", "1. Check RAID"),
		w.Body.String())
}

func TestDownloadHandler_Rejects(t *testing.T) {
	r := newTestRouter(t, &stubClient{})

	w := postForm(r, "/download", url.Values{"mode": {"Poem"}, "topic": {"Storage"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postForm(r, "/download", url.Values{"mode": {"Draft customer reply"}, "topic": {"Mainframe"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadHandler_BadTimestampUsesNow(t *testing.T) {
	r := newTestRouter(t, &stubClient{})

	w := postForm(r, "/download", url.Values{"mode": {"Draft customer reply"}, "topic": {"Other"}, "generated_at": {"soon"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Regexp(t, `^attachment; filename="helpdesk_\d{8}-\d{6}\.md"$`, w.Header().Get("Content-Disposition"))
}

func TestGenerateAPIHandler(t *testing.T) {
	client := &stubClient{out: "Dear customer"}
	r := newTestRouter(t, client)

	w := postJSON(r, "/api/helpdesk/generate", `{"mode":"Draft customer reply","topic":"Cabling","issue_text":"  loose cable "}`)

	require.Equal(t, http.StatusOK, w.Code)
	var res domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Dear customer", res.Output)
	assert.Contains(t, res.Prompt, "Issue:\nloose cable\n")
	assert.Contains(t, res.Prompt, application.ReplyTask)
	assert.Contains(t, res.Report, "**Issue:**\n  loose cable \n")
	assert.Regexp(t, `^helpdesk_\d{8}-\d{6}\.md$`, res.Filename)
}

func TestGenerateAPIHandler_DefaultsMode(t *testing.T) {
	client := &stubClient{out: "ok"}
	r := newTestRouter(t, client)

	w := postJSON(r, "/api/helpdesk/generate", `{"topic":"Networking","issue_text":"link down"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], application.ChecklistTask)
}

func TestGenerateAPIHandler_BadRequests(t *testing.T) {
	client := &stubClient{}
	r := newTestRouter(t, client)

	for name, body := range map[string]string{
		"malformed":     `{"topic":`,
		"missing topic": `{"mode":"Draft customer reply"}`,
		"unknown topic": `{"topic":"Mainframe"}`,
		"unknown mode":  `{"topic":"Networking","mode":"Poem"}`,
	} {
		w := postJSON(r, "/api/helpdesk/generate", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Contains(t, w.Body.String(), `"error"`, name)
	}
	assert.Empty(t, client.prompts)
}

func TestGenerateFormHandler_NormalizesCRLFIssueText(t *testing.T) {
	client := &stubClient{out: "ok"}
	r := newTestRouter(t, client)

	w := postForm(r, "/generate", url.Values{
		"topic":      {"Storage"},
		"mode":       {"Troubleshoot checklist"},
		"issue_text": {"disk 3 amber\r\nrebuild stuck"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Issue:\ndisk 3 amber\nrebuild stuck\n\n")
	assert.NotContains(t, client.prompts[0], "\r")
}

func TestGenerateFormHandler_RendersMarkdownSafely(t *testing.T) {
	r := newTestRouter(t, &stubClient{out: "**Escalate** to L2\n\n<script>alert(1)</script>"})

	w := postForm(r, "/generate", url.Values{"topic": {"Networking"}, "issue_text": {"link down"}})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<strong>Escalate</strong> to L2")
	assert.NotContains(t, body, "<script>alert(1)</script>")
}

func TestDownloadHandler_CRLFFieldsMatchReport(t *testing.T) {
	r := newTestRouter(t, &stubClient{})

	w := postForm(r, "/download", url.Values{
		"mode":         {"Troubleshoot checklist"},
		"topic":        {"Networking"},
		"issue_text":   {"link down\r\nafter maintenance"},
		"output":       {"1. Check optic\r\n2. Swap cable"},
		"generated_at": {"20261017-080910"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		application.BuildReport("AI Helpdesk Assistant", domain.ModeChecklist, "Networking",
			"link down\nafter maintenance", "1. Check optic\n2. Swap cable"),
		w.Body.String())
	assert.NotContains(t, w.Body.String(), "\r")
}

func TestDownloadHandler_RoundTripsGeneratedReport(t *testing.T) {
	client := &stubClient{out: "1. Check optic\n2. Swap cable"}
	r := newTestRouter(t, client)

	api := postJSON(r, "/api/helpdesk/generate", `{"topic":"Networking","issue_text":"link down"}`)
	require.Equal(t, http.StatusOK, api.Code)
	var res domain.Result
	require.NoError(t, json.Unmarshal(api.Body.Bytes(), &res))

	// What a browser posts back from the hidden fields.
	w := postForm(r, "/download", url.Values{
		"mode":         {"Troubleshoot checklist"},
		"topic":        {"Networking"},
		"issue_text":   {"link down"},
		"output":       {strings.ReplaceAll(res.Output, "\n", "\r\n")},
		"generated_at": {application.FormatReportTimestamp(res.GeneratedAt)},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, res.Report, w.Body.String())
	assert.Equal(t, `attachment; filename="`+res.Filename+`"`, w.Header().Get("Content-Disposition"))
}
