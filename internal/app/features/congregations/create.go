// internal/app/features/congregations/create.go
package congregations

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/system/inputval"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
	"github.com/dalemusser/conghub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type createCongregationInput struct {
	Email        string `json:"email"`
	CountryCode  string `json:"country_code"`
	CongName     string `json:"cong_name"`
	CongNumber   int    `json:"cong_number"`
	AppRequestor string `json:"app_requestor"`
}

func (in createCongregationInput) validate() inputval.Errors {
	var errs inputval.Errors
	if !inputval.IsValidEmail(in.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if in.CountryCode == "" {
		errs.Add("country_code", "is required")
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

// HandleCreate creates a congregation directly and attaches the creator as
// its first member with the admin and lmmo roles. A congregation with the
// same country code and number already on record is reported as 404
// CONG_EXISTS with no mutation.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createCongregationInput
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

	if _, err := h.Congs.GetByNumber(ctx, in.CountryCode, in.CongNumber); err == nil {
		h.Out.Warn(w, r, http.StatusNotFound, outcome.Message("CONG_EXISTS"),
			"the congregation requested already exists")
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		h.Out.Error(w, r, err)
		return
	}

	creator, err := h.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(),
			"no account could be found for the provided email")
		return
	}
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	cong, err := h.Congs.Create(ctx, models.Congregation{
		CongName:    in.CongName,
		CongNumber:  in.CongNumber,
		CountryCode: in.CountryCode,
	})
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	roles := []string{models.RoleAdmin, models.RoleLMMO}
	if err := h.Users.Affiliate(ctx, creator.ID, cong.ID.Hex(), roles); err != nil {
		h.Out.Error(w, r, err)
		return
	}

	creator, err = h.Users.GetByID(ctx, creator.ID)
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, creator, "congregation created")
}
