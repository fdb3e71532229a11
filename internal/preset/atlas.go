package preset

import "github.com/kazz187/agentstudio/internal/studio"

const AtlasName = "atlas"

// Atlas returns the built-in B2B SaaS preset. Each call returns fresh slices.
func Atlas() *Preset {
	return &Preset{
		Name:        AtlasName,
		Title:       "Atlas for B2B SaaS",
		Description: "Revenue-ready AI partner for pipeline, renewals and account intelligence.",
		Snapshot: studio.Snapshot{
			Persona: studio.Persona{
				Codename: "Atlas",
				Industry: "B2B SaaS",
				Tone:     studio.ToneProfessional,
				Voice:    studio.VoiceAdvisor,
				Competencies: []string{
					"Pipeline acceleration strategy",
					"Customer expansion playbooks",
				},
				Guardrails: []string{
					"Never promise incentives without approval",
					"Always reference compliance policies before giving legal advice",
				},
			},
			Objectives: []studio.Objective{
				{ID: "pipeline", Title: "Warm outbound at scale", Category: studio.ObjectiveRevenue, SuccessMetric: "Meetings booked / rep", Priority: studio.PriorityHigh, Enabled: true},
				{ID: "renewals", Title: "Proactive renewal success plans", Category: studio.ObjectiveSupport, SuccessMetric: "Net revenue retention", Priority: studio.PriorityHigh, Enabled: true},
				{ID: "intelligence", Title: "Account intelligence briefs", Category: studio.ObjectiveOperations, SuccessMetric: "Time-to-insight", Priority: studio.PriorityMedium, Enabled: true},
				{ID: "support", Title: "Tier-1 ticket automation", Category: studio.ObjectiveSupport, SuccessMetric: "Resolution time", Priority: studio.PriorityMedium, Enabled: false},
			},
			Integrations: []studio.Integration{
				{ID: "hubspot", Name: "HubSpot CRM", Category: studio.IntegrationCRM, Description: "Sync deal stages, log activities, and trigger workflows.", Enabled: true},
				{ID: "salesforce", Name: "Salesforce", Category: studio.IntegrationCRM, Description: "Enterprise CRM connector with granular permissioning.", Enabled: false},
				{ID: "zendesk", Name: "Zendesk", Category: studio.IntegrationSupport, Description: "Auto resolve tickets and summarize escalations.", Enabled: true},
				{ID: "slack", Name: "Slack", Category: studio.IntegrationData, Description: "Bi-directional agent collaboration with channel routing.", Enabled: true},
				{ID: "notion", Name: "Notion", Category: studio.IntegrationData, Description: "Keep SOPs updated, mirror briefs, and sync knowledge base.", Enabled: false},
			},
			Automations: []studio.Automation{
				{
					ID:          "deal-desk",
					Title:       "Deal Desk Co-Pilot",
					Description: "Ingest RFPs, highlight blockers, and deliver a pricing strategy deck with approval workflows.",
					Trigger:     "New enterprise opportunity over $50k ARR",
					Action:      "10-minute SLA response with annotated draft",
					Metric:      "Win-rate delta vs. control",
					Enabled:     true,
				},
				{
					ID:          "renewal-radar",
					Title:       "Renewal Radar",
					Description: "Surfaces expansion opportunities, drafts success plans, and schedules QBRs with smart agendas.",
					Trigger:     "Renewal within 90 days",
					Action:      "Auto-generated plan with exec summary",
					Metric:      "Net revenue retention (NRR)",
					Enabled:     true,
				},
				{
					ID:          "support-autoresolve",
					Title:       "Support Auto Resolve",
					Description: "Handles tier-1 tickets end-to-end with escalation guardrails and customer satisfaction tracking.",
					Trigger:     "Ticket severity: low",
					Action:      "Autonomous resolution + CRM notes",
					Metric:      "First response time",
					Enabled:     false,
				},
				{
					ID:          "board-analytics",
					Title:       "Board Analytics Pack",
					Description: "Aggregates GTM metrics, annotates trends, and drafts quarterly board readouts automatically.",
					Trigger:     "Quarterly board meeting upcoming",
					Action:      "Board-ready narrative with charts",
					Metric:      "Prep hours saved",
					Enabled:     false,
				},
			},
		},
		IntroMessages: []studio.Message{
			{
				Role:    studio.RoleAssistant,
				Content: "Hi there! I’m Atlas, your revenue-ready AI partner. Upload a target account list or ask me to craft a market entry plan and I’ll spin it up instantly.",
			},
		},
	}
}
