package quiz

import "context"

// Presenter renders questions, feedback and the final summary.
type Presenter interface {
	ShowQuestion(q Question, p Progress)
	ShowFeedback(r Result, p Progress)
	ShowComplete(s *Summary)
}

// InputSource reads one raw answer for a question.
type InputSource interface {
	ReadAnswer(ctx context.Context, q Question) (string, error)
}

// Run drives s to completion, one question at a time. Input errors,
// including cancellation and EOF, stop the loop at a question boundary;
// the partial summary is returned with the error.
func Run(ctx context.Context, s *Session, p Presenter, in InputSource) (*Summary, error) {
	s.Begin(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return s.Finish(ctx), err
		}
		q, ok := s.Next()
		if !ok {
			break
		}
		p.ShowQuestion(*q, s.Progress())

		raw, err := in.ReadAnswer(ctx, *q)
		if err != nil {
			return s.Finish(ctx), err
		}
		res, err := s.Submit(ctx, raw)
		if err != nil {
			return s.Finish(ctx), err
		}
		p.ShowFeedback(res, s.Progress())
	}

	sum := s.Finish(ctx)
	p.ShowComplete(sum)
	return sum, nil
}
