// internal/app/features/congregations/update.go
package congregations

import (
	"context"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	"github.com/dalemusser/conghub/internal/app/system/inputval"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
)

type updateCongregationInput struct {
	CountryCode string `json:"country_code"`
	CongName    string `json:"cong_name"`
	CongNumber  int    `json:"cong_number"`
}

func (in updateCongregationInput) validate() inputval.Errors {
	var errs inputval.Errors
	if in.CountryCode == "" {
		errs.Add("country_code", "is required")
	}
	if in.CongName == "" {
		errs.Add("cong_name", "is required")
	}
	if in.CongNumber <= 0 {
		errs.Add("cong_number", "must be a positive number")
	}
	return errs
}

// HandleUpdateInfo persists new identity fields for a congregation and
// returns the caller's refreshed record.
func (h *Handler) HandleUpdateInfo(w http.ResponseWriter, r *http.Request) {
	access, ok := h.Gate.ResolveMember(w, r, congpolicy.MissingCongID)
	if !ok {
		return
	}

	var in updateCongregationInput
	errs := inputval.DecodeBody(r, &in)
	if errs.Empty() {
		errs = in.validate()
	}
	if !errs.Empty() {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: "+errs.Join())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Congs.UpdateInfo(ctx, access.Cong.ID, in.CountryCode, in.CongName, in.CongNumber); err != nil {
		h.Out.Error(w, r, err)
		return
	}

	// Membership is derived from the users collection, so the rename is
	// visible everywhere without touching member records.
	caller, err := h.Users.GetByEmail(ctx, access.Email)
	if err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, caller, "congregation information updated")
}
