// internal/app/features/congregations/request.go
package congregations

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/system/inputval"
	"github.com/dalemusser/conghub/internal/app/system/mailer"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
	"github.com/dalemusser/conghub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type requestCongregationInput struct {
	Email        string `json:"email"`
	CongName     string `json:"cong_name"`
	CongNumber   int    `json:"cong_number"`
	AppRequestor string `json:"app_requestor"`
}

func (in requestCongregationInput) validate() inputval.Errors {
	var errs inputval.Errors
	if !inputval.IsValidEmail(in.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if in.CongName == "" {
		errs.Add("cong_name", "is required")
	}
	if in.CongNumber <= 0 {
		errs.Add("cong_number", "must be a positive number")
	}
	if in.AppRequestor == "" {
		errs.Add("app_requestor", "is required")
	}
	return errs
}

// HandleRequest files a congregation-creation request. At most one open
// request may exist per email; a duplicate is an idempotent rejection
// (405 REQUEST_EXIST), not an error. In auto-approve mode the congregation
// is created immediately and the request closed as approved.
func (h *Handler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var in requestCongregationInput
	errs := inputval.DecodeBody(r, &in)
	if errs.Empty() {
		errs = in.validate()
	}
	if !errs.Empty() {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: "+errs.Join())
		return
	}

	if in.AppRequestor != models.RoleLMMO {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: "+in.AppRequestor)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Requests.FindOpenByEmail(ctx, in.Email); err == nil {
		h.Out.Warn(w, r, http.StatusMethodNotAllowed, outcome.Message("REQUEST_EXIST"),
			"user can only make one request")
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		h.Out.Error(w, r, err)
		return
	}

	requestor, err := h.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(),
			"no account could be found for the provided email")
		return
	}
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	req := models.CongregationRequest{
		Email:      in.Email,
		UserID:     requestor.ID,
		Username:   requestor.Username,
		CongName:   in.CongName,
		CongNumber: in.CongNumber,
		CongRole:   in.AppRequestor,
	}
	req, err = h.Requests.Create(ctx, req)
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	if h.Cfg.AutoApproveRequests {
		h.approveRequest(ctx, w, r, req, requestor)
		return
	}

	email := mailer.BuildCongregationRequest(mailer.CongregationRequestData{
		CongName:   req.CongName,
		CongNumber: req.CongNumber,
		Username:   requestor.Username,
	})
	email.To = h.Cfg.ReviewerEmail
	_ = h.Mail.Send(email) // delivery failure never fails the request

	h.Out.Info(w, r, http.StatusOK, map[string]any{
		"message":     "OK",
		"cong_name":   req.CongName,
		"cong_number": req.CongNumber,
	}, "congregation request sent for approval")
}

// approveRequest creates the congregation on the spot, attaches the
// requestor as a member with their requested role, and closes the request.
func (h *Handler) approveRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, req models.CongregationRequest, requestor models.User) {
	cong, err := h.Congs.Create(ctx, models.Congregation{
		CongName:   req.CongName,
		CongNumber: req.CongNumber,
	})
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	if err := h.Users.Affiliate(ctx, requestor.ID, cong.ID.Hex(), []string{req.CongRole}); err != nil {
		h.Out.Error(w, r, err)
		return
	}

	if err := h.Requests.Approve(ctx, req.ID); err != nil {
		h.Out.Error(w, r, err)
		return
	}

	email := mailer.BuildAccountCreated(mailer.AccountCreatedData{
		Username:   requestor.Username,
		CongName:   req.CongName,
		CongNumber: req.CongNumber,
	})
	email.To = req.Email
	_ = h.Mail.Send(email)

	h.Out.Info(w, r, http.StatusOK, outcome.Message("OK"), "congregation created")
}
