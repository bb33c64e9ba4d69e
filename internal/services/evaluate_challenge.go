package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/ports"
)

type SubmissionInput struct {
	ChallengeSlug string
	Designation   string
	Alpha         float64
	Reynolds      float64
	CL            float64
	CD            float64
	LD            float64
	UserID        *int64
}

type EvaluationOutcome struct {
	Challenge *domain.Challenge
	Passed    bool
	Message   string
	Feedback  string
	Points    int
	// The persisted attempt; nil when recording failed.
	Submission *domain.ChallengeSubmission
}

// EvaluateChallenge scores a submission against a challenge's constraints
// and records the attempt. Every constraint produces a feedback line on
// failure; the threshold checks also confirm on success so the learner
// sees what they got right.
func EvaluateChallenge(
	ctx context.Context,
	in SubmissionInput,
	repo ports.ChallengeRepository,
) (EvaluationOutcome, error) {
	challenge, err := repo.GetChallengeBySlug(ctx, in.ChallengeSlug)
	if err != nil {
		return EvaluationOutcome{}, fmt.Errorf("evaluate challenge: %w", err)
	}
	if challenge == nil {
		return EvaluationOutcome{}, notFoundf("Challenge '%s' not found", in.ChallengeSlug)
	}

	passed, feedback := scoreSubmission(challenge.Constraints, in)

	var message string
	points := 0
	if passed {
		points = challenge.Points
		message = fmt.Sprintf("🎉 Challenge Complete!\n\n%s\n\nYou earned %d points!", feedback, points)
	} else {
		message = fmt.Sprintf("Not quite there yet!\n\n%s\n\nKeep trying!", feedback)
	}

	sub := &domain.ChallengeSubmission{
		ChallengeID:   challenge.ID,
		UserID:        in.UserID,
		Designation:   in.Designation,
		Alpha:         in.Alpha,
		Reynolds:      in.Reynolds,
		CL:            in.CL,
		CD:            in.CD,
		LD:            in.LD,
		Passed:        passed,
		PointsAwarded: points,
		Feedback:      feedback,
	}
	stored, err := repo.InsertSubmission(ctx, sub)
	if err != nil {
		log.Printf("record challenge submission failed: %v", err)
		stored = nil
	}

	return EvaluationOutcome{
		Challenge:  challenge,
		Passed:     passed,
		Message:    message,
		Feedback:   feedback,
		Points:     points,
		Submission: stored,
	}, nil
}

func scoreSubmission(c domain.ChallengeConstraints, in SubmissionInput) (bool, string) {
	var lines []string
	passed := true

	fail := func(format string, args ...any) {
		passed = false
		lines = append(lines, fmt.Sprintf(format, args...))
	}
	pass := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	if c.TargetCLMin != nil {
		if in.CL < *c.TargetCLMin {
			fail("❌ CL too low: %.4f < %g", in.CL, *c.TargetCLMin)
		} else {
			pass("✅ CL requirement met: %.4f", in.CL)
		}
	}
	if c.TargetCLMax != nil && in.CL > *c.TargetCLMax {
		fail("❌ CL too high: %.4f > %g", in.CL, *c.TargetCLMax)
	}

	if c.TargetCDMax != nil {
		if in.CD > *c.TargetCDMax {
			fail("❌ CD too high: %.6f > %g", in.CD, *c.TargetCDMax)
		} else {
			pass("✅ Drag requirement met: %.6f", in.CD)
		}
	}

	if c.TargetLDMin != nil {
		if in.LD < *c.TargetLDMin {
			fail("❌ L/D too low: %.1f < %g", in.LD, *c.TargetLDMin)
		} else {
			pass("✅ L/D requirement met: %.1f", in.LD)
		}
	}

	if c.Alpha != nil && math.Abs(in.Alpha-*c.Alpha) > 0.1 {
		fail("❌ Must use α = %g°", *c.Alpha)
	}
	if c.AlphaMin != nil && in.Alpha < *c.AlphaMin {
		fail("❌ Alpha too low: %g° < %g°", in.Alpha, *c.AlphaMin)
	}
	if c.AlphaMax != nil && in.Alpha > *c.AlphaMax {
		fail("❌ Alpha too high: %g° > %g°", in.Alpha, *c.AlphaMax)
	}

	if c.Reynolds != nil && math.Abs(in.Reynolds-*c.Reynolds) > 1 {
		fail("❌ Must use Reynolds = %g", *c.Reynolds)
	}

	if c.RequiredDesignation != "" && bareDesignation(in.Designation) != bareDesignation(c.RequiredDesignation) {
		fail("❌ Must use NACA %s", c.RequiredDesignation)
	}

	return passed, strings.Join(lines, "\n")
}

// "NACA 2412", "naca2412" and "2412" all name the same section.
func bareDesignation(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "naca")
	return strings.TrimSpace(s)
}
