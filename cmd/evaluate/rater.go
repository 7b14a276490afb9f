package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"datenight/internal/planner/evaluation"
	"datenight/internal/planner/model"
)

// promptRater shows each plan without its method name and reads a 1-5 score.
// An empty answer skips the plan.
type promptRater struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptRater(in io.Reader, out io.Writer) *promptRater {
	return &promptRater{in: bufio.NewReader(in), out: out}
}

func (r *promptRater) Rate(ctx context.Context, s evaluation.Scenario, _ string, plan model.Plan) (int, error) {
	fmt.Fprintf(r.out, "\n%s  (budget $%.0f, vibes %s)\n", s.Name, s.Budget, strings.Join(s.Vibes, ", "))
	for i, stop := range plan.Stops {
		fmt.Fprintf(r.out, "  %d. [%s] %s  $%.0f  %.1f*\n", i+1, stop.Stage, stop.Venue.Name, stop.Venue.Cost, stop.Venue.Rating)
	}
	fmt.Fprintf(r.out, "  total $%.0f\n", plan.TotalCost)

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprint(r.out, "Rate 1 (Very Bad) to 5 (Very Happy), blank to skip: ")
		line, err := r.in.ReadString('\n')
		answer := strings.TrimSpace(line)
		if answer == "" {
			if err != nil && err != io.EOF {
				return 0, err
			}
			return 0, nil
		}
		score, convErr := strconv.Atoi(answer)
		if convErr == nil && score >= 1 && score <= 5 {
			return score, nil
		}
		if err != nil {
			return 0, fmt.Errorf("read rating: %q is not 1-5", answer)
		}
		fmt.Fprintln(r.out, "  please answer 1-5")
	}
}
