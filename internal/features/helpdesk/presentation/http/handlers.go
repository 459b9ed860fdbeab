package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	configdomain "helpdesk-assistant/internal/features/config/domain"
	"helpdesk-assistant/internal/features/helpdesk/application"
	"helpdesk-assistant/internal/features/helpdesk/domain"
	"helpdesk-assistant/internal/logging"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// markdown renders model output for the page. Raw HTML in the output is
// dropped, since goldmark only passes it through with html.WithUnsafe.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderOutput turns the model's Markdown into HTML, falling back to escaped text.
func renderOutput(output string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(output), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(output) + "</pre>")
	}
	return template.HTML(buf.String())
}

// formText reads a submitted form value. Browsers send line breaks as CRLF;
// the prompt and the report are built from LF text.
func formText(c *gin.Context, key string) string {
	return normalizeNewlines(c.PostForm(key))
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// HelpdeskHandler holds the helpdesk service and the resolved app config.
type HelpdeskHandler struct {
	helpdeskService application.HelpdeskService
	appConfig       *configdomain.AppConfig
	logger          *zap.Logger
}

// NewHelpdeskHandler creates a new HelpdeskHandler.
func NewHelpdeskHandler(helpdeskService application.HelpdeskService, appConfig *configdomain.AppConfig, logger *zap.Logger) *HelpdeskHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HelpdeskHandler{
		helpdeskService: helpdeskService,
		appConfig:       appConfig,
		logger:          logger,
	}
}

type pageData struct {
	Title         string
	Caption       string
	Topics        []string
	Modes         []string
	HelpText      []string
	Tips          string
	Placeholder   string
	SelectedTopic string
	SelectedMode  string
	IssueText     string
	Result        *domain.Result
	OutputHTML    template.HTML
	Stamp         string
}

func (h *HelpdeskHandler) page(topic string, mode domain.Mode, issueText string) pageData {
	return pageData{
		Title:         h.appConfig.Title,
		Caption:       h.appConfig.Caption,
		Topics:        h.appConfig.Topics,
		Modes:         domain.ModeNames(),
		HelpText:      h.appConfig.HelpText,
		Tips:          h.appConfig.Tips,
		Placeholder:   "Example: Node does not POST after RAM replacement",
		SelectedTopic: topic,
		SelectedMode:  string(mode),
		IssueText:     issueText,
	}
}

func (h *HelpdeskHandler) defaultTopic() string {
	if len(h.appConfig.Topics) == 0 {
		return ""
	}
	return h.appConfig.Topics[0]
}

func (h *HelpdeskHandler) knownTopic(topic string) bool {
	return slices.Contains(h.appConfig.Topics, topic)
}

// IndexHandler renders the empty form.
func (h *HelpdeskHandler) IndexHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.page(h.defaultTopic(), domain.ModeChecklist, ""))
}

// GenerateFormHandler handles the form submit and re-renders the page with the result.
func (h *HelpdeskHandler) GenerateFormHandler(c *gin.Context) {
	topic := c.PostForm("topic")
	if !h.knownTopic(topic) {
		topic = h.defaultTopic()
	}
	mode, _ := domain.ParseMode(c.PostForm("mode"))
	issueText := formText(c, "issue_text")

	result := h.helpdeskService.Generate(c.Request.Context(), domain.SessionInput{
		Mode:      mode,
		Topic:     topic,
		IssueText: issueText,
	})

	data := h.page(topic, mode, issueText)
	data.Result = result
	data.OutputHTML = renderOutput(result.Output)
	data.Stamp = application.FormatReportTimestamp(result.GeneratedAt)
	c.HTML(http.StatusOK, "index.html", data)
}

// DownloadHandler rebuilds the Markdown report from the posted fields and sends it as an attachment.
func (h *HelpdeskHandler) DownloadHandler(c *gin.Context) {
	var req domain.DownloadRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, ok := domain.ParseMode(req.Mode)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown mode %q", req.Mode)})
		return
	}
	if !h.knownTopic(req.Topic) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown topic %q", req.Topic)})
		return
	}

	at, err := application.ParseReportTimestamp(req.GeneratedAt)
	if err != nil {
		at = time.Now()
	}
	filename := application.ReportFilename(at)
	report := h.helpdeskService.Report(mode, req.Topic, normalizeNewlines(req.IssueText), normalizeNewlines(req.Output))

	h.logger.Debug("report download", zap.String("filename", filename), zap.String("request_id", logging.RequestID(c)))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report))
}

// GenerateAPIHandler handles the JSON variant of the generate cycle.
func (h *HelpdeskHandler) GenerateAPIHandler(c *gin.Context) {
	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := domain.ModeChecklist
	if req.Mode != "" {
		var ok bool
		if mode, ok = domain.ParseMode(req.Mode); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown mode %q", req.Mode)})
			return
		}
	}
	if !h.knownTopic(req.Topic) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown topic %q", req.Topic)})
		return
	}

	result := h.helpdeskService.Generate(c.Request.Context(), domain.SessionInput{
		Mode:      mode,
		Topic:     req.Topic,
		IssueText: req.IssueText,
	})
	c.JSON(http.StatusOK, result)
}
