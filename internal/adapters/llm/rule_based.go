package llm

import (
	"context"
	"strings"

	"airfoil-lab-service/internal/domain"
)

// RuleBased answers from a fixed topic table so the tutor still works when
// no model API is configured.
type RuleBased struct{}

func NewRuleBased() *RuleBased { return &RuleBased{} }

func (r *RuleBased) Name() string { return "rule-based" }

var topicReplies = []struct {
	keywords []string
	reply    string
}{
	{
		[]string{"lift", "cl"},
		"Lift comes from the pressure difference between the upper and lower surfaces. Camber and angle of attack both increase that difference, which is why CL grows with alpha until the flow separates at stall.",
	},
	{
		[]string{"drag", "cd"},
		"Drag at these speeds has two main parts: skin friction from the boundary layer and pressure drag from the shape. Thicker sections and higher lift both add pressure drag, so CD rises with CL.",
	},
	{
		[]string{"reynolds"},
		"The Reynolds number compares inertial to viscous forces in the flow. Higher Re means a thinner boundary layer and usually lower drag. Run the same section at 1e5 and 1e6 and compare the CD values.",
	},
	{
		[]string{"camber"},
		"Camber is the curvature of the mean line. More camber shifts the lift curve upward so the section lifts at zero alpha, at the price of a stronger nose-down pitching moment.",
	},
	{
		[]string{"thickness", "thick"},
		"Thickness trades structure against drag. Around 12% of chord is a common compromise: enough depth for a spar without too much pressure drag.",
	},
	{
		[]string{"naca"},
		"A NACA 4-digit code reads camber, camber position, thickness: 2412 means 2% camber at 40% of chord, 12% thick. Tell me to run one to see its numbers.",
	},
	{
		[]string{"stall", "angle of attack", "alpha"},
		"Angle of attack is the angle between the chord line and the oncoming flow. Past roughly 15 degrees the boundary layer separates and lift collapses. Sweep a polar and watch CL stop growing while CD jumps.",
	},
}

const fallbackReply = "I can explain airfoil basics, angle of attack, Reynolds number effects, lift and drag, or NACA codes. Ask about one of those, or tell me to run a simulation, e.g. \"try naca 2412 at 5 degrees\"."

func (r *RuleBased) Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error) {
	last := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			last = strings.ToLower(messages[i].Content)
			break
		}
	}

	for _, t := range topicReplies {
		for _, kw := range t.keywords {
			if strings.Contains(last, kw) {
				return t.reply, nil
			}
		}
	}

	return fallbackReply, nil
}
