package scopes

// ============================================================================
// DOMAIN SCOPES - Recruitment & onboarding
// ============================================================================

const (
	ScopeJobsAll    = "jobs:*"
	ScopeJobsRead   = "jobs:read"
	ScopeJobsWrite  = "jobs:write"
	ScopeJobsDelete = "jobs:delete"

	ScopeApplicationsAll    = "applications:*"
	ScopeApplicationsRead   = "applications:read"
	ScopeApplicationsWrite  = "applications:write"
	ScopeApplicationsReview = "applications:review" // cambiar etapa del candidato

	ScopeResumesRead  = "resumes:read"
	ScopeResumesWrite = "resumes:write"

	ScopeInterviewsAll      = "interviews:*"
	ScopeInterviewsRead     = "interviews:read"
	ScopeInterviewsSchedule = "interviews:schedule"
	ScopeInterviewsConduct  = "interviews:conduct" // status, outcome, feedback
	ScopeInterviewsDelete   = "interviews:delete"

	ScopeRoundsRead  = "rounds:read"
	ScopeRoundsWrite = "rounds:write"

	ScopeOnboardingRead = "onboarding:read"

	ScopeOffersAll  = "offers:*"
	ScopeOffersRead = "offers:read"
	ScopeOffersSend = "offers:send"
)

// DomainScopeCategories organizes domain-specific scopes
var DomainScopeCategories = map[string][]string{
	"Jobs": {
		ScopeJobsAll,
		ScopeJobsRead,
		ScopeJobsWrite,
		ScopeJobsDelete,
	},
	"Applications": {
		ScopeApplicationsAll,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeApplicationsReview,
		ScopeResumesRead,
		ScopeResumesWrite,
	},
	"Interviews": {
		ScopeInterviewsAll,
		ScopeInterviewsRead,
		ScopeInterviewsSchedule,
		ScopeInterviewsConduct,
		ScopeInterviewsDelete,
		ScopeRoundsRead,
		ScopeRoundsWrite,
	},
	"Onboarding": {
		ScopeOnboardingRead,
		ScopeOffersAll,
		ScopeOffersRead,
		ScopeOffersSend,
	},
}

var DomainScopeDescriptions = map[string]string{
	ScopeJobsAll:    "Full access to job postings",
	ScopeJobsRead:   "View job postings",
	ScopeJobsWrite:  "Create and edit job postings",
	ScopeJobsDelete: "Delete job postings",

	ScopeApplicationsAll:    "Full access to applications",
	ScopeApplicationsRead:   "View applications",
	ScopeApplicationsWrite:  "Create applications",
	ScopeApplicationsReview: "Move applications through the pipeline",
	ScopeResumesRead:        "Download resumes",
	ScopeResumesWrite:       "Upload resumes",

	ScopeInterviewsAll:      "Full access to interviews",
	ScopeInterviewsRead:     "View interview sessions",
	ScopeInterviewsSchedule: "Schedule and reschedule interview sessions",
	ScopeInterviewsConduct:  "Record status, outcome and feedback",
	ScopeInterviewsDelete:   "Delete interview sessions",
	ScopeRoundsRead:         "View interview rounds",
	ScopeRoundsWrite:        "Manage interview rounds",

	ScopeOnboardingRead: "View onboarding records",
	ScopeOffersAll:      "Full access to offer letters",
	ScopeOffersRead:     "View and download offer letters",
	ScopeOffersSend:     "Generate and send offer letters",
}

// RoleScopes are the scopes granted by each staff role when a user is created
// without explicit scopes.
var RoleScopes = map[string][]string{
	"admin": {
		ScopeAll,
	},
	"hr": {
		ScopeUsersRead,
		ScopeJobsAll,
		ScopeApplicationsAll,
		ScopeInterviewsAll,
		ScopeRoundsRead,
		ScopeRoundsWrite,
		ScopeOnboardingRead,
		ScopeOffersAll,
		ScopeNotificationsConfig,
	},
	"interviewer": {
		ScopeJobsRead,
		ScopeApplicationsRead,
		ScopeResumesRead,
		ScopeInterviewsRead,
		ScopeInterviewsConduct,
		ScopeRoundsRead,
	},
}
