package handler

import (
	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
	"github.com/careerguide/portal/internal/core/service"
)

// errorResponse documents the error envelope produced by the API error handler.
type errorResponse struct {
	Error         string                 `json:"error"`
	Reason        string                 `json:"reason,omitempty"`
	Notifications []service.Notification `json:"notifications,omitempty"`
}

type deviceResponse struct {
	Token    string `json:"token"`
	DeviceID string `json:"device_id"`
}

type signUpRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,secret"`
	Name      string   `json:"name" validate:"required"`
	UserType  string   `json:"user_type" validate:"omitempty,oneof=student parent"`
	Phone     string   `json:"phone"`
	Grade     string   `json:"grade"`
	Interests []string `json:"interests"`
	Location  string   `json:"location"`
}

type signInRequest struct {
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

// federatedRequest carries the ID token from the provider flow. An empty
// token means the user dismissed the popup.
type federatedRequest struct {
	Provider string `json:"provider" validate:"omitempty,oneof=google"`
	IDToken  string `json:"id_token"`
}

type resetRequest struct {
	Email string `json:"email" validate:"required"`
}

type profilePatchRequest struct {
	Name      *string  `json:"name"`
	Phone     *string  `json:"phone"`
	Grade     *string  `json:"grade"`
	Interests []string `json:"interests"`
	Location  *string  `json:"location"`
}

type warningResponse struct {
	Op      string `json:"op"`
	Message string `json:"message"`
}

type authResponse struct {
	Session       *domain.Session        `json:"session"`
	Message       string                 `json:"message,omitempty"`
	Warnings      []warningResponse      `json:"warnings,omitempty"`
	Notifications []service.Notification `json:"notifications,omitempty"`
}

type sessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	Mode          string          `json:"mode"`
	Session       *domain.Session `json:"session,omitempty"`
}

type resetResponse struct {
	Message       string                 `json:"message"`
	Diagnostic    string                 `json:"diagnostic,omitempty"`
	Notifications []service.Notification `json:"notifications,omitempty"`
}

type messageResponse struct {
	Message       string                 `json:"message"`
	Notifications []service.Notification `json:"notifications,omitempty"`
}

type userDataResponse struct {
	Session *domain.Session         `json:"session"`
	Profile *domain.ProfileDocument `json:"profile"`
}

type usersResponse struct {
	Users []domain.UserSummary `json:"users"`
}

type collegeListResponse struct {
	Items      []domain.College `json:"items"`
	Cards      []ports.Card     `json:"cards"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	HasPrev    bool             `json:"has_prev"`
	HasNext    bool             `json:"has_next"`
}

type applyResponse struct {
	College  *domain.College `json:"college,omitempty"`
	Redirect string          `json:"redirect,omitempty"`
	Message  string          `json:"message,omitempty"`
}

type questionsResponse struct {
	Questions []domain.Question `json:"questions"`
}

type answerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Choice     int    `json:"choice" validate:"min=0"`
}

type scoreRequest struct {
	Answers []answerRequest `json:"answers" validate:"required,dive"`
}

type careerFieldsResponse struct {
	Fields []domain.CareerField `json:"fields"`
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

func toAuthResponse(res *ports.AuthResult, notes []service.Notification) authResponse {
	out := authResponse{Session: res.Session, Message: res.Message, Notifications: notes}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, warningResponse{Op: w.Op, Message: "completed, but profile details could not be saved"})
	}
	return out
}

func toSignUpInput(r signUpRequest) ports.SignUpInput {
	return ports.SignUpInput{
		Email:     r.Email,
		Password:  r.Password,
		Name:      r.Name,
		UserType:  r.UserType,
		Phone:     r.Phone,
		Grade:     r.Grade,
		Interests: r.Interests,
		Location:  r.Location,
	}
}

func toProfilePatch(r profilePatchRequest) ports.ProfilePatch {
	return ports.ProfilePatch{
		Name:      r.Name,
		Phone:     r.Phone,
		Grade:     r.Grade,
		Interests: r.Interests,
		Location:  r.Location,
	}
}
