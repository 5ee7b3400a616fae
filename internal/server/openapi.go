package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/chronoquest/journeys/internal/journey"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "ChronoQuest Journeys API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for narrative learning journeys: attempts, progression, scoring, and rewards.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(map[string]HealthStatus{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHealthz)

	// POST /api/session
	postSession, _ := r.NewOperationContext(http.MethodPost, "/api/session")
	postSession.SetSummary("Create learner session")
	postSession.SetDescription("Registers a learner name and returns the Bearer token for all learner routes.")
	postSession.AddReqStructure(SessionRequest{})
	postSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postSession)

	// GET /api/journeys/{journeyID}
	getJourneyOp, _ := r.NewOperationContext(http.MethodGet, "/api/journeys/{journeyID}")
	getJourneyOp.SetSummary("Get journey")
	getJourneyOp.SetDescription("Returns the published journey with answers and accuracy markers stripped. Requires Bearer token.")
	getJourneyOp.AddRespStructure(journey.Definition{}, openapi.WithHTTPStatus(http.StatusOK))
	getJourneyOp.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getJourneyOp.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getJourneyOp)

	// POST /api/journeys/{journeyID}/attempts
	postStart, _ := r.NewOperationContext(http.MethodPost, "/api/journeys/{journeyID}/attempts")
	postStart.SetSummary("Start attempt")
	postStart.SetDescription("Creates an in-progress attempt positioned at the journey's first chapter. Requires Bearer token.")
	postStart.AddRespStructure(AttemptResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postStart)

	// GET /api/attempts/{attemptID}
	getAttemptOp, _ := r.NewOperationContext(http.MethodGet, "/api/attempts/{attemptID}")
	getAttemptOp.SetSummary("Get attempt")
	getAttemptOp.SetDescription("Returns the attempt for resume; hasStarted tells the client whether to show the introduction.")
	getAttemptOp.AddRespStructure(AttemptResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getAttemptOp.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getAttemptOp.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(getAttemptOp)

	// POST /api/attempts/{attemptID}/visit
	postVisit, _ := r.NewOperationContext(http.MethodPost, "/api/attempts/{attemptID}/visit")
	postVisit.SetSummary("Record chapter visit")
	postVisit.SetDescription("Appends a chapter visit with time spent. Requires Bearer token.")
	postVisit.AddReqStructure(VisitRequest{})
	postVisit.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	postVisit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postVisit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postVisit)

	// POST /api/attempts/{attemptID}/discovery
	postDiscovery, _ := r.NewOperationContext(http.MethodPost, "/api/attempts/{attemptID}/discovery")
	postDiscovery.SetSummary("Collect discovery")
	postDiscovery.SetDescription("Collects a discovery; collecting the same one twice is a no-op returning the same payload.")
	postDiscovery.AddReqStructure(DiscoveryRequest{})
	postDiscovery.AddRespStructure(journey.Discovery{}, openapi.WithHTTPStatus(http.StatusOK))
	postDiscovery.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postDiscovery.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postDiscovery)

	// POST /api/attempts/{attemptID}/decision
	postDecision, _ := r.NewOperationContext(http.MethodPost, "/api/attempts/{attemptID}/decision")
	postDecision.SetSummary("Record decision")
	postDecision.SetDescription("Records a decision at the current chapter and routes the attempt to the chosen option's next chapter.")
	postDecision.AddReqStructure(DecisionRequest{})
	postDecision.AddRespStructure(journey.DecisionOutcome{}, openapi.WithHTTPStatus(http.StatusOK))
	postDecision.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postDecision.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postDecision)

	// POST /api/attempts/{attemptID}/challenge
	postChallenge, _ := r.NewOperationContext(http.MethodPost, "/api/attempts/{attemptID}/challenge")
	postChallenge.SetSummary("Submit challenge")
	postChallenge.SetDescription("Evaluates a challenge submission server-side and records the result. Retries after failure are allowed.")
	postChallenge.AddReqStructure(ChallengeRequest{})
	postChallenge.AddRespStructure(journey.ChallengeOutcome{}, openapi.WithHTTPStatus(http.StatusOK))
	postChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postChallenge)

	// POST /api/attempts/{attemptID}/complete
	postComplete, _ := r.NewOperationContext(http.MethodPost, "/api/attempts/{attemptID}/complete")
	postComplete.SetSummary("Complete attempt")
	postComplete.SetDescription("Scores and freezes the attempt. rewardsPending is true when the reward ledger was unreachable.")
	postComplete.AddRespStructure(CompleteResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postComplete.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postComplete)

	// GET /api/attempts/{attemptID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/attempts/{attemptID}/events")
	getEvents.SetSummary("SSE progression stream")
	getEvents.SetDescription("Server-Sent Events stream of progression events for an attempt. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// GET /api/admin/journeys
	listJourneys, _ := r.NewOperationContext(http.MethodGet, "/api/admin/journeys")
	listJourneys.SetSummary("List journeys")
	listJourneys.SetDescription("Returns published journey summaries. Requires admin_session cookie.")
	listJourneys.AddRespStructure([]JourneySummary{}, openapi.WithHTTPStatus(http.StatusOK))
	listJourneys.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listJourneys)

	// POST /api/admin/journeys
	createJourneyOp, _ := r.NewOperationContext(http.MethodPost, "/api/admin/journeys")
	createJourneyOp.SetSummary("Publish journey")
	createJourneyOp.SetDescription("Publishes a journey definition; rejects chapter graphs with dangling nextChapter targets.")
	createJourneyOp.AddReqStructure(journey.Definition{})
	createJourneyOp.AddRespStructure(journey.Definition{}, openapi.WithHTTPStatus(http.StatusCreated))
	createJourneyOp.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createJourneyOp.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createJourneyOp)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
