package checkout

import "context"

// QuizData is what the questionnaire steps collected before checkout.
type QuizData struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	SelectedPrice string `json:"selected_price"`
}

// QuizStore persists quiz context across funnel steps.
type QuizStore interface {
	Get(ctx context.Context, sessionID string) (*QuizData, error)
	Save(ctx context.Context, sessionID string, data *QuizData) error
}
