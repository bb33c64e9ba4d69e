package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/ports"
)

// How much of a session transcript is replayed to the model. Three
// exchanges keeps the prompt small without losing the thread.
const tutorHistoryLimit = 6

const tutorFallbackReply = "I'm having trouble connecting to my AI brain right now. Please try again!"

type TutorRequest struct {
	SessionID string
	Message   string
	// Client-supplied transcript, used when no session is persisted.
	History []domain.ChatMessage
	// Coefficients from the run the user is currently looking at.
	CurrentResults *domain.AeroResult
	UserID         *int64
}

type TutorOutcome struct {
	Response            string
	Extracted           *ExtractedParams
	SimulationTriggered bool
	SimulationResult    *domain.AeroResult
}

// TutorRespond answers one tutor message. It extracts any airfoil and
// flow parameters from the text, replays recent history to the model with
// the extracted context attached, and, when the user asked for a run and
// named an airfoil, launches the simulation and reports its outcome in
// the reply. Model and storage failures degrade the reply rather than
// failing the exchange.
func TutorRespond(
	ctx context.Context,
	req TutorRequest,
	model ports.ChatModel,
	predictor ports.AeroPredictor,
	simRepo ports.SimulationRepository,
	chatRepo ports.ChatRepository,
) TutorOutcome {
	extracted := ExtractParams(req.Message)

	history := req.History
	if chatRepo != nil && req.SessionID != "" {
		stored, err := chatRepo.ListMessages(ctx, req.SessionID, tutorHistoryLimit)
		if err != nil {
			log.Printf("load chat history for session %q failed: %v", req.SessionID, err)
		} else {
			history = make([]domain.ChatMessage, 0, len(stored))
			for _, m := range stored {
				history = append(history, *m)
			}
		}
	}
	if len(history) > tutorHistoryLimit {
		history = history[len(history)-tutorHistoryLimit:]
	}

	var contextParts []string
	if r := req.CurrentResults; r != nil {
		contextParts = append(contextParts,
			fmt.Sprintf("Current simulation results: CL=%.3f, CD=%.4f, L/D=%.1f", r.CL, r.CD, r.LD))
	}
	if extracted != nil {
		if enc, err := json.Marshal(extracted); err == nil {
			contextParts = append(contextParts, "User mentioned parameters: "+string(enc))
		}
	}

	userContent := req.Message
	if len(contextParts) > 0 {
		userContent += "\n\n[Context: " + strings.Join(contextParts, "; ") + "]"
	}

	messages := make([]domain.ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: userContent})

	reply, err := model.Complete(ctx, tutorSystemPrompt(), messages)
	if err != nil {
		log.Printf("tutor model %q failed: %v", model.Name(), err)
		reply = tutorFallbackReply
	}

	out := TutorOutcome{Extracted: extracted}

	if hasTriggerWord(req.Message) && extracted != nil && extracted.AirfoilType != "" {
		res, simErr := runExtractedSimulation(ctx, extracted, req.UserID, predictor, simRepo)
		if simErr != nil {
			reply += "\n\nI tried to run the simulation but encountered an error: " + simErr.Error()
		} else {
			reply += fmt.Sprintf("\n\nSimulation complete! CL=%.3f, CD=%.4f, L/D=%.1f", res.CL, res.CD, res.LD)
			out.SimulationTriggered = true
			out.SimulationResult = &res
		}
	}

	out.Response = reply

	if chatRepo != nil && req.SessionID != "" {
		store := func(role, content string) {
			_, err := chatRepo.InsertMessage(ctx, &domain.ChatMessage{
				SessionID: req.SessionID,
				UserID:    req.UserID,
				Role:      role,
				Content:   content,
			})
			if err != nil {
				log.Printf("record chat message for session %q failed: %v", req.SessionID, err)
			}
		}
		store(domain.RoleUser, req.Message)
		store(domain.RoleAssistant, reply)
	}

	return out
}

// A triggered run goes through the same resolution and validation as an
// explicit one, so out-of-range extracted values come back as a readable
// error line instead of a junk prediction.
func runExtractedSimulation(
	ctx context.Context,
	p *ExtractedParams,
	userID *int64,
	predictor ports.AeroPredictor,
	simRepo ports.SimulationRepository,
) (domain.AeroResult, error) {
	sel := AirfoilSelector{
		Type:        p.AirfoilType,
		Designation: p.NACADesignation,
		PresetName:  p.PresetName,
		Camber:      p.Camber,
		Thickness:   p.Thickness,
	}
	if sel.Type == "custom" {
		if sel.Camber == nil {
			c := 0.04
			sel.Camber = &c
		}
		if sel.Thickness == nil {
			t := 0.12
			sel.Thickness = &t
		}
	}

	cond := domain.FlightCondition{Alpha: 5.0, Reynolds: 1e6}
	if p.Alpha != nil {
		cond.Alpha = *p.Alpha
	}
	if p.Reynolds != nil {
		cond.Reynolds = *p.Reynolds
	}

	outcome, err := RunSimulation(ctx, SimulationRequest{
		Airfoil:   sel,
		Condition: cond,
		UserID:    userID,
	}, predictor, simRepo)
	if err != nil {
		return domain.AeroResult{}, err
	}
	return outcome.Result, nil
}

func tutorSystemPrompt() string {
	return fmt.Sprintf(`You are an expert aerodynamics AI tutor helping users learn about airfoil design and CFD simulation.

Your role is to:
1. Guide users on how to specify airfoil parameters correctly
2. Explain aerodynamic concepts (lift, drag, L/D ratio, angle of attack, Reynolds number)
3. Interpret simulation results and suggest improvements
4. Be educational and encouraging

Available airfoil types:
- **NACA 4-digit** (e.g., "NACA 0012", "NACA 2412", "NACA 4412")
  Format: MPXX where M=max camber (%%), P=location of max camber (/10), XX=thickness (%%)

- **Presets**: %s
  Examples: "naca0012" (symmetric), "high_lift" (high camber), "low_drag" (thin)

- **Custom**: Specify camber and thickness
  Example: "camber 0.04, thickness 0.12"

Parameters you can set:
- **Alpha (angle of attack)**: -20° to 30° (typical: 0-15°)
- **Reynolds number**: 10,000 to 10,000,000 (typical: 1,000,000)
- **Mach number**: 0 to 0.3 (currently unused by NeuralFoil)

When users ask for help:
- Explain parameter ranges and typical values
- Suggest good starting points for beginners
- Interpret results (e.g., "Your L/D of 65 is excellent for a low-speed airfoil")
- Explain trade-offs (lift vs drag, camber vs thickness)

Current simulation tool:
- **NeuralFoil 0.3.2**: Neural network CFD solver
- **Speed**: 3-5ms per prediction
- **Accuracy**: Trained on XFOIL data, accurate for standard airfoils

Keep responses concise (2-4 sentences) unless explaining complex concepts.
`, strings.Join(airfoil.PresetNames(), ", "))
}
