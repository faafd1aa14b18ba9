package pages

import (
	"context"
	"io"
	"strconv"
	"strings"

	"casa_portal_go/models"
	"casa_portal_go/templates/components"

	"github.com/a-h/templ"
)

// PipelineBoard renders the volunteer Kanban board fragment, one column per stage in display order
func PipelineBoard(board models.PipelineBoard, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div id="pipeline-board" class="pipeline" hx-headers='{"X-CSRF-Token": "` + esc(csrfToken) + `"}'>`)
		for _, stage := range models.PipelineStages {
			volunteers := board[stage]
			b.WriteString(`<section class="pipeline-column" data-stage="` + esc(string(stage)) + `">`)
			b.WriteString(`<h2>` + esc(stage.Label()) + ` <span class="count">` + strconv.Itoa(len(volunteers)) + `</span></h2>`)
			for _, v := range volunteers {
				writeVolunteerCard(&b, v)
			}
			b.WriteString(`</section>`)
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeVolunteerCard(b *strings.Builder, v models.Volunteer) {
	b.WriteString(`<article class="volunteer-card" id="volunteer-` + esc(v.ID) + `" data-volunteer="` + components.DataAttr(v) + `">`)
	b.WriteString(`<h3>` + esc(v.FullName()) + `</h3>`)
	if v.Email != "" {
		b.WriteString(`<p class="email">` + esc(v.Email) + `</p>`)
	}
	b.WriteString(`<p class="cases">` + strconv.Itoa(v.CasesAssigned) + ` cases</p>`)
	for _, action := range stageActions(v.VolunteerStatus) {
		b.WriteString(`<button hx-post="/htmx/volunteers/` + esc(v.ID) + `/pipeline-action" hx-vals='{"action": "` + esc(string(action)) + `"}' hx-target="#pipeline-board" hx-swap="outerHTML">` +
			esc(actionLabel(action)) + `</button>`)
	}
	b.WriteString(`</article>`)
}

// stageActions lists the buttons offered on a card; the backend still validates the transition
func stageActions(status models.VolunteerStatus) []models.PipelineAction {
	switch status {
	case models.VolunteerStatusApplied:
		return []models.PipelineAction{models.PipelineActionStartBackgroundCheck, models.PipelineActionReject}
	case models.VolunteerStatusBackgroundCheck:
		return []models.PipelineAction{models.PipelineActionApproveBackgroundCheck, models.PipelineActionReject}
	case models.VolunteerStatusTraining:
		return []models.PipelineAction{models.PipelineActionCompleteTraining, models.PipelineActionActivate, models.PipelineActionReject}
	case models.VolunteerStatusRejected:
		return []models.PipelineAction{models.PipelineActionReopen}
	default:
		return nil
	}
}

func actionLabel(a models.PipelineAction) string {
	words := strings.Split(string(a), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
