package models

import (
	"github.com/cloudwego/eino/schema"
)

// WorkflowState is the record threaded through the workflow graph for one user turn.
// Nodes never mutate it in place; each returns a StateUpdate that Apply merges into a copy.
type WorkflowState struct {
	UserInput      string            `json:"user_input"`
	ChatHistory    []*schema.Message `json:"chat_history"`    // Prior turns, oldest first
	DataContext    string            `json:"data_context"`    // Empty until the data stage runs
	AnalysisResult string            `json:"analysis_result"` // Empty until the analysis stage runs
	ReportContent  string            `json:"report_content"`
	CurrentNode    string            `json:"current_node"` // Last executed node
	Route          Intent            `json:"route"`
	FinalGoal      Intent            `json:"final_goal"` // Set once by the router
	Path           []string          `json:"path"`       // Visited nodes in order
}

// StateUpdate is the partial result of a single node. Nil fields are left untouched.
type StateUpdate struct {
	Node           string
	DataContext    *string
	AnalysisResult *string
	ReportContent  *string
	Route          Intent
	FinalGoal      Intent
}

// NewWorkflowState builds the initial state for a turn.
func NewWorkflowState(input string, history []*schema.Message) WorkflowState {
	h := make([]*schema.Message, len(history))
	copy(h, history)
	return WorkflowState{
		UserInput:   input,
		ChatHistory: h,
	}
}

// Apply returns a new state with the update merged in. FinalGoal is only
// taken from the update while the state has none.
func (s WorkflowState) Apply(u StateUpdate) WorkflowState {
	next := s
	next.Path = make([]string, len(s.Path), len(s.Path)+1)
	copy(next.Path, s.Path)

	if u.Node != "" {
		next.CurrentNode = u.Node
		next.Path = append(next.Path, u.Node)
	}
	if u.DataContext != nil {
		next.DataContext = *u.DataContext
	}
	if u.AnalysisResult != nil {
		next.AnalysisResult = *u.AnalysisResult
	}
	if u.ReportContent != nil {
		next.ReportContent = *u.ReportContent
	}
	if u.Route != "" {
		next.Route = u.Route
	}
	if u.FinalGoal != "" && s.FinalGoal == "" {
		next.FinalGoal = u.FinalGoal
	}
	return next
}

// Visited reports whether node ran during this turn.
func (s WorkflowState) Visited(node string) bool {
	return s.indexOf(node) >= 0
}

// VisitedBefore reports whether a ran before b.
func (s WorkflowState) VisitedBefore(a, b string) bool {
	ia, ib := s.indexOf(a), s.indexOf(b)
	return ia >= 0 && ib >= 0 && ia < ib
}

func (s WorkflowState) indexOf(node string) int {
	for i, n := range s.Path {
		if n == node {
			return i
		}
	}
	return -1
}

// StageInput is what a pipeline stage sees of the workflow state.
type StageInput struct {
	Query          string
	History        []*schema.Message
	DataContext    string
	AnalysisResult string
}

func (s WorkflowState) StageInput() StageInput {
	return StageInput{
		Query:          s.UserInput,
		History:        s.ChatHistory,
		DataContext:    s.DataContext,
		AnalysisResult: s.AnalysisResult,
	}
}

// Text returns a pointer to v for use in a StateUpdate.
func Text(v string) *string { return &v }
