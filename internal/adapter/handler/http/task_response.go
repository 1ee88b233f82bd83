package http

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/goodspace/oneshot-server/internal/domain/model"
)

const dateLayout = "2006-01-02"

type fileResponse struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	ByteSize    int64     `json:"byte_size"`
}

type annotationResponse struct {
	Number   int     `json:"number"`
	PercentX float64 `json:"percent_x"`
	PercentY float64 `json:"percent_y"`
}

type commentResponse struct {
	ID             int64              `json:"id"`
	Type           string             `json:"type"`
	Content        string             `json:"content"`
	Starred        bool               `json:"starred"`
	RegisterStatus string             `json:"register_status"`
	ReadByMentee   bool               `json:"read_by_mentee"`
	Annotation     annotationResponse `json:"annotation"`
	Answer         *string            `json:"answer,omitempty"`
	AnswerDraft    *string            `json:"answer_draft,omitempty"`
}

type proofShotResponse struct {
	ID       int64             `json:"id"`
	File     *fileResponse     `json:"file,omitempty"`
	Comments []commentResponse `json:"comments"`
}

type worksheetResponse struct {
	ID   int64         `json:"id"`
	File *fileResponse `json:"file,omitempty"`
}

type columnLinkResponse struct {
	ID   int64  `json:"id"`
	Link string `json:"link"`
}

type taskResponse struct {
	ID                  int64                `json:"id"`
	MenteeID            int64                `json:"mentee_id"`
	Subject             string               `json:"subject"`
	Name                string               `json:"name"`
	StartDate           *string              `json:"start_date,omitempty"`
	DueDate             *string              `json:"due_date,omitempty"`
	GoalMinutes         int                  `json:"goal_minutes"`
	ActualMinutes       *int                 `json:"actual_minutes,omitempty"`
	Completed           bool                 `json:"completed"`
	CreatedBy           string               `json:"created_by"`
	HasFeedback         bool                 `json:"has_feedback"`
	HasReadAllFeedbacks bool                 `json:"has_read_all_feedbacks"`
	Worksheets          []worksheetResponse  `json:"worksheets"`
	ColumnLinks         []columnLinkResponse `json:"column_links"`
	ProofShots          []proofShotResponse  `json:"proof_shots"`
	GeneralComment      *string              `json:"general_comment,omitempty"`
	GeneralCommentDraft *string              `json:"general_comment_draft,omitempty"`
}

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(dateLayout)
	return &s
}

func newFileResponse(f *model.File) *fileResponse {
	if f == nil {
		return nil
	}
	return &fileResponse{
		ID:          f.ID,
		FileName:    f.FileName,
		ContentType: f.ContentType,
		ByteSize:    f.ByteSize,
	}
}

// newTaskResponse maps a task aggregate. Draft feedback belongs to the
// mentor alone: withDrafts controls whether TEMPORARY comments, the
// draft general comment and draft answers appear at all.
func newTaskResponse(task *model.Task, withDrafts bool) taskResponse {
	resp := taskResponse{
		ID:                  task.ID,
		MenteeID:            task.MenteeID,
		Subject:             string(task.Subject),
		Name:                task.Name,
		StartDate:           formatDate(task.StartDate),
		DueDate:             formatDate(task.DueDate),
		GoalMinutes:         task.GoalMinutes,
		ActualMinutes:       task.ActualMinutes,
		Completed:           task.Completed,
		CreatedBy:           string(task.CreatedBy),
		HasFeedback:         task.HasFeedback(),
		HasReadAllFeedbacks: task.HasReadAllFeedbacks(),
		Worksheets:          make([]worksheetResponse, 0, len(task.Worksheets)),
		ColumnLinks:         make([]columnLinkResponse, 0, len(task.ColumnLinks)),
		ProofShots:          make([]proofShotResponse, 0, len(task.ProofShots)),
	}

	for _, w := range task.Worksheets {
		resp.Worksheets = append(resp.Worksheets, worksheetResponse{ID: w.ID, File: newFileResponse(w.File)})
	}
	for _, l := range task.ColumnLinks {
		resp.ColumnLinks = append(resp.ColumnLinks, columnLinkResponse{ID: l.ID, Link: l.Link})
	}
	for i := range task.ProofShots {
		resp.ProofShots = append(resp.ProofShots, newProofShotResponse(&task.ProofShots[i], withDrafts))
	}

	if task.GeneralComment != nil {
		resp.GeneralComment = task.GeneralComment.Text.Final
		if withDrafts {
			resp.GeneralCommentDraft = task.GeneralComment.Text.Draft
		}
	}

	return resp
}

func newProofShotResponse(shot *model.ProofShot, withDrafts bool) proofShotResponse {
	resp := proofShotResponse{
		ID:       shot.ID,
		File:     newFileResponse(shot.File),
		Comments: make([]commentResponse, 0, len(shot.Comments)),
	}

	for i := range shot.Comments {
		c := &shot.Comments[i]
		if !withDrafts && !c.IsConfirmed() {
			continue
		}

		comment := commentResponse{
			ID:             c.ID,
			Type:           string(c.Type),
			Content:        c.Content,
			Starred:        c.Starred,
			RegisterStatus: string(c.RegisterStatus),
			ReadByMentee:   c.ReadByMentee,
			Annotation: annotationResponse{
				Number:   c.Annotation.Number,
				PercentX: c.Annotation.PercentX,
				PercentY: c.Annotation.PercentY,
			},
			Answer: c.Answer.Final,
		}
		if withDrafts {
			comment.AnswerDraft = c.Answer.Draft
		}
		resp.Comments = append(resp.Comments, comment)
	}

	return resp
}

func newTaskResponses(tasks []*model.Task, withDrafts bool) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, newTaskResponse(task, withDrafts))
	}
	return out
}
