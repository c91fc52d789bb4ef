package email

import (
	"fmt"
	"strings"

	"shelfwatch/internal/application/notification/dto"
	"shelfwatch/internal/infrastructure/template"
	"shelfwatch/internal/shared/biztime"
	"shelfwatch/internal/shared/constants"
	"shelfwatch/internal/shared/services/markdown"
)

// TemplateRenderer is satisfied by template.DigestTemplateLoader.
type TemplateRenderer interface {
	Render(name string, data any) (string, error)
}

// DigestRenderer turns notification payloads into messages. The markdown
// source doubles as the plain-text part.
type DigestRenderer struct {
	templates TemplateRenderer
	markdown  markdown.MarkdownService
	baseURL   string
}

func NewDigestRenderer(templates TemplateRenderer, md markdown.MarkdownService, baseURL string) *DigestRenderer {
	return &DigestRenderer{
		templates: templates,
		markdown:  md,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

type dailyView struct {
	*dto.DailyAlert
	SettingsURL string
}

type weeklyView struct {
	*dto.WeeklyReport
	DashboardURL string
}

func (r *DigestRenderer) RenderDaily(alert *dto.DailyAlert) (Message, error) {
	subject := fmt.Sprintf("%d batch(es) expiring within %d day(s)", len(alert.Alerts), alert.ThresholdDays)
	if n := countExpired(alert.Alerts); n > 0 {
		subject = fmt.Sprintf("%d expired, %d expiring within %d day(s)", n, len(alert.Alerts)-n, alert.ThresholdDays)
	}
	view := dailyView{DailyAlert: alert, SettingsURL: r.baseURL + constants.PathSettings}
	return r.render(template.NameDaily, alert.Recipient.Email, subject, view)
}

func (r *DigestRenderer) RenderWeekly(report *dto.WeeklyReport) (Message, error) {
	subject := "Weekly inventory report, week of " + report.Date.Format(biztime.DateLayout)
	view := weeklyView{WeeklyReport: report, DashboardURL: r.baseURL + constants.PathDashboard}
	return r.render(template.NameWeekly, report.Recipient.Email, subject, view)
}

func (r *DigestRenderer) render(name, to, subject string, view any) (Message, error) {
	source, err := r.templates.Render(name, view)
	if err != nil {
		return Message{}, err
	}
	html, err := r.markdown.ToHTMLSanitized(source)
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: subject, PlainBody: source, HTMLBody: html}, nil
}

func countExpired(alerts []dto.BatchAlert) int {
	n := 0
	for _, a := range alerts {
		if a.DaysUntil < 0 {
			n++
		}
	}
	return n
}
