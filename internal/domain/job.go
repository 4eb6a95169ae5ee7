package domain

// AIType names a backend generation job family.
type AIType string

const AITypeMonthlyFigures AIType = "MONTHLY_FIGURES"

type MonthlyFiguresInput struct {
	GivenMonth        string `json:"given_month"`
	FieldOfExcellence string `json:"field_of_excellence"`
}

// JobRequest is the POST /call_api body.
type JobRequest struct {
	AIType AIType `json:"ai_type"`
	Input  any    `json:"input"`
}

// JobResult is what /call_api returns once the job is queued.
type JobResult struct {
	Message string `json:"message"`
	AIType  string `json:"ai_type"`
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
}

// PostedUpdate is the PATCH /monthly-figures/{id} body.
type PostedUpdate struct {
	Posted   bool   `json:"posted"`
	PostedOn string `json:"posted_on"`
}
