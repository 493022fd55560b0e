// Package ai generates team training plans through the Anthropic API and
// pushes roster snapshots to an optional external recommendation endpoint.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Beru003/valorant-coach-pro/internal/roster"
	"github.com/Beru003/valorant-coach-pro/internal/statistics"
)

const trainerSystemPrompt = `You are a professional VALORANT coach. You are given structured roster and
performance data from a coaching dashboard and must produce a training plan.

Rules:
- Ground every recommendation in the numbers provided. Never invent statistics.
- Prioritize by impact: fix the weakest measurable area first.
- Keep drills concrete and practicable in a single session.
- Respond with a single JSON object and nothing else.`

// Recommendation is one training item of a plan.
type Recommendation struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority"` // high, medium, low
	Category       string   `json:"category"` // aim, strategy, utility, positioning, communication
	Tags           []string `json:"tags"`
	EstimatedTime  int      `json:"estimatedTime"` // minutes
	SpecificDrills []string `json:"specificDrills"`
	TargetPlayers  []string `json:"targetPlayers,omitempty"`
}

// TrainingPlan is the full AI-generated team plan.
type TrainingPlan struct {
	Recommendations   []Recommendation `json:"recommendations"`
	Analysis          string           `json:"analysis"`
	TeamFocus         string           `json:"teamFocus"`
	StrategicInsights string           `json:"strategicInsights"`
}

// Trainer calls the Anthropic API. A zero API key disables it; callers must
// check Enabled before use.
type Trainer struct {
	client anthropic.Client
	model  string
	log    *slog.Logger
	apiKey string
}

// NewTrainer creates a Trainer. apiKey may be empty.
func NewTrainer(apiKey, model string, log *slog.Logger) *Trainer {
	return &Trainer{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		log:    log.With("component", "ai"),
		apiKey: apiKey,
	}
}

// Enabled reports whether an API key is configured.
func (t *Trainer) Enabled() bool { return t.apiKey != "" }

// GenerateTeamPlan builds the prompt from the current roster and aggregate,
// queries the model, and decodes the JSON plan from its reply.
func (t *Trainer) GenerateTeamPlan(ctx context.Context, teamName string, players []roster.PlayerRecord, agg roster.TeamAggregate) (*TrainingPlan, error) {
	if !t.Enabled() {
		return nil, fmt.Errorf("ai trainer disabled: no API key configured")
	}

	prompt := BuildTeamPrompt(teamName, players, agg)

	msg, err := t.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(t.model),
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: trainerSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	plan, err := DecodePlan(text.String())
	if err != nil {
		return nil, err
	}
	t.log.Info("training plan generated", "team", teamName, "recommendations", len(plan.Recommendations))
	return plan, nil
}

// BuildTeamPrompt renders the roster and aggregate into the plan request.
func BuildTeamPrompt(teamName string, players []roster.PlayerRecord, agg roster.TeamAggregate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a comprehensive training plan for this team:\n\n")
	fmt.Fprintf(&b, "Team: %s\n", teamName)
	fmt.Fprintf(&b, "Overall Win Rate: %d%%\n", agg.WinRate)
	fmt.Fprintf(&b, "Team Average K/D: %.2f, ACS: %d, Headshot %%: %d\n\n", agg.AverageKD, agg.AverageACS, agg.HeadshotPct)

	b.WriteString("Players:\n")
	for _, p := range players {
		s := statistics.Summarize(p)
		fmt.Fprintf(&b, "- %s (%s, %s): K/D %.2f, ACS %d, Headshot %d%%, Win Rate %d%%\n",
			p.FullName, p.PrimaryRole, p.CurrentRank, s.KD, s.ACS, s.HeadshotPct, s.WinRate)
	}

	if len(agg.AgentUsage) > 0 {
		b.WriteString("\nAgent Pool:\n")
		for _, a := range agg.AgentUsage {
			fmt.Fprintf(&b, "- %s (%s): %.0f%% of matches, %.0f%% win rate\n", a.Agent, a.Role, a.Usage, a.WinRate)
		}
	}
	if len(agg.WeaponUsage) > 0 {
		b.WriteString("\nWeapon Preferences:\n")
		for _, w := range agg.WeaponUsage {
			fmt.Fprintf(&b, "- %s: %d kills, %.1f%% accuracy\n", w.Weapon, w.Kills, w.Accuracy)
		}
	}

	b.WriteString("\nRole Distribution: ")
	first := true
	for _, role := range []string{roster.RoleDuelist, roster.RoleInitiator, roster.RoleController, roster.RoleSentinel} {
		if n, ok := agg.RoleDistribution[role]; ok {
			if !first {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %d", role, n)
			first = false
		}
	}

	b.WriteString(`

Create a detailed training plan that includes:
1. 5-8 specific training recommendations prioritized by impact
2. Individual player focus areas
3. Team coordination improvements
4. Role synergy optimization
5. Specific drills and practice routines

Format as JSON:
{
  "recommendations": [
    {
      "title": "Training Title",
      "description": "Detailed description of what needs to be improved and why",
      "priority": "high|medium|low",
      "category": "aim|strategy|utility|positioning|communication",
      "tags": ["specific", "actionable", "tags"],
      "estimatedTime": 60,
      "specificDrills": ["Detailed drill 1", "Detailed drill 2"],
      "targetPlayers": ["Player names if specific to certain players"]
    }
  ],
  "analysis": "Comprehensive team analysis covering strengths, weaknesses, and improvement opportunities",
  "teamFocus": "Primary focus areas for the team based on current performance",
  "strategicInsights": "Strategic recommendations for team composition and playstyle"
}
`)
	return b.String()
}

// jsonObjectRE grabs the first-to-last brace span so plans survive models
// that wrap their JSON in prose or code fences.
var jsonObjectRE = regexp.MustCompile(`\{[\s\S]*\}`)

// DecodePlan extracts and decodes the JSON training plan from a model reply.
func DecodePlan(text string) (*TrainingPlan, error) {
	raw := jsonObjectRE.FindString(text)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in model reply")
	}
	var plan TrainingPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("decode training plan: %w", err)
	}
	return &plan, nil
}
