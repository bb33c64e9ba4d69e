package services

import (
	"context"
	"fmt"
	"strings"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/ports"
)

// Named flight conditions the agent understands. A command may name
// several; they run in this order.
var agentConditions = []struct {
	Keyword  string
	Name     string
	Alpha    float64
	Reynolds float64
}{
	{Keyword: "cruise", Name: "Cruise", Alpha: 4.0, Reynolds: 2e6},
	{Keyword: "takeoff", Name: "Takeoff", Alpha: 8.0, Reynolds: 1.5e6},
	{Keyword: "landing", Name: "Landing", Alpha: 6.0, Reynolds: 1e6},
}

// One simulation the agent ran in response to a command, with the derived
// pedagogy ratings.
type AgentRunResult struct {
	Condition  string
	Alpha      float64
	Reynolds   float64
	Result     domain.AeroResult
	StallRisk  string
	Efficiency string
}

type AgentOutcome struct {
	Action  string
	Message string
	// Set for generate commands.
	Airfoil *domain.AgentAirfoil
	// Set for simulate commands.
	Results []AgentRunResult
}

// AgentCommand interprets one command against a session's state. Commands
// containing "generate" or "create" plus a NACA designation (or a preset
// name) set the session's working airfoil; "test" or "simulate" runs it
// at the named conditions, defaulting to cruise. Anything else is
// rejected.
func AgentCommand(
	ctx context.Context,
	sessionID string,
	command string,
	store ports.SessionStore,
	predictor ports.AeroPredictor,
) (AgentOutcome, error) {
	text := strings.ToLower(strings.TrimSpace(command))

	state, err := store.Load(ctx, sessionID)
	if err != nil {
		return AgentOutcome{}, fmt.Errorf("agent command: load session: %w", err)
	}
	if state == nil {
		state = &domain.AgentState{}
	}

	switch {
	case strings.Contains(text, "generate") || strings.Contains(text, "create"):
		return agentGenerate(ctx, sessionID, text, state, store)
	case strings.Contains(text, "test") || strings.Contains(text, "simulate"):
		return agentSimulate(ctx, sessionID, text, state, store, predictor)
	default:
		return AgentOutcome{}, &RequestError{Msg: "Command not recognized"}
	}
}

func agentGenerate(
	ctx context.Context,
	sessionID string,
	text string,
	state *domain.AgentState,
	store ports.SessionStore,
) (AgentOutcome, error) {
	var spec airfoil.Spec
	var label string

	if m := nacaRe.FindStringSubmatch(text); m != nil {
		parsed, err := airfoil.ParseDesignation(m[1])
		if err != nil {
			return AgentOutcome{}, err
		}
		spec = parsed
		label = "NACA " + parsed.Designation()
	} else {
		names := airfoil.PresetNames()
		for i, re := range presetRes {
			if re.MatchString(text) {
				preset, _ := airfoil.LookupPreset(names[i])
				spec = preset.Spec
				label = preset.Name
				break
			}
		}
	}
	if spec == nil {
		return AgentOutcome{}, &RequestError{Msg: "Could not parse NACA code"}
	}

	coords, err := spec.Generate(0, true)
	if err != nil {
		return AgentOutcome{}, fmt.Errorf("agent command: generate %s: %w", label, err)
	}

	state.Airfoil = &domain.AgentAirfoil{Designation: label, Coordinates: coords.Pairs()}
	if err := store.Save(ctx, sessionID, state); err != nil {
		return AgentOutcome{}, fmt.Errorf("agent command: save session: %w", err)
	}

	return AgentOutcome{
		Action:  "generate",
		Message: "Generated " + label,
		Airfoil: state.Airfoil,
	}, nil
}

func agentSimulate(
	ctx context.Context,
	sessionID string,
	text string,
	state *domain.AgentState,
	store ports.SessionStore,
	predictor ports.AeroPredictor,
) (AgentOutcome, error) {
	if state.Airfoil == nil {
		return AgentOutcome{}, &RequestError{Msg: "No airfoil generated yet"}
	}

	coords, err := airfoil.FromPairs(state.Airfoil.Coordinates)
	if err != nil {
		return AgentOutcome{}, fmt.Errorf("agent command: session airfoil: %w", err)
	}

	type namedCondition struct {
		Name     string
		Alpha    float64
		Reynolds float64
	}
	var conds []namedCondition
	for _, c := range agentConditions {
		if strings.Contains(text, c.Keyword) {
			conds = append(conds, namedCondition{Name: c.Name, Alpha: c.Alpha, Reynolds: c.Reynolds})
		}
	}
	if len(conds) == 0 {
		conds = []namedCondition{{Name: "Cruise", Alpha: 4.0, Reynolds: 2e6}}
	}

	results := make([]AgentRunResult, 0, len(conds))
	for _, c := range conds {
		res, err := predictor.Predict(ctx, coords, domain.FlightCondition{Alpha: c.Alpha, Reynolds: c.Reynolds})
		if err != nil {
			return AgentOutcome{}, &UpstreamError{Err: fmt.Errorf("agent command: predict %s: %w", c.Name, err)}
		}

		run := AgentRunResult{
			Condition:  c.Name,
			Alpha:      c.Alpha,
			Reynolds:   c.Reynolds,
			Result:     res,
			StallRisk:  res.StallRisk(c.Alpha),
			Efficiency: res.EfficiencyRating(),
		}
		results = append(results, run)

		state.History = append(state.History, domain.AgentRun{
			Condition:  run.Condition,
			Alpha:      run.Alpha,
			Reynolds:   run.Reynolds,
			CL:         res.CL,
			CD:         res.CD,
			LD:         res.LD,
			StallRisk:  run.StallRisk,
			Efficiency: run.Efficiency,
		})
	}

	if err := store.Save(ctx, sessionID, state); err != nil {
		return AgentOutcome{}, fmt.Errorf("agent command: save session: %w", err)
	}

	return AgentOutcome{
		Action:  "simulate",
		Message: fmt.Sprintf("Completed %d simulations", len(results)),
		Results: results,
	}, nil
}
