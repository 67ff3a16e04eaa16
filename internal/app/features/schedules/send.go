// internal/app/features/schedules/send.go
package schedules

import (
	"context"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	"github.com/dalemusser/conghub/internal/app/system/inputval"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
)

type sendScheduleInput struct {
	Schedules    any `json:"schedules"`
	CongSettings any `json:"cong_settings"`
}

// HandleSend persists the congregation's schedule and settings sections
// together for its pocket users.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	access, ok := h.Gate.ResolveMember(w, r, congpolicy.MissingCongID)
	if !ok {
		return
	}

	var in sendScheduleInput
	errs := inputval.DecodeBody(r, &in)
	if errs.Empty() {
		if in.Schedules == nil {
			errs.Add("schedules", "is required")
		}
		if in.CongSettings == nil {
			errs.Add("cong_settings", "is required")
		}
	}
	if !errs.Empty() {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: "+errs.Join())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Congs.SaveSchedule(ctx, access.Cong.ID, in.Schedules, in.CongSettings); err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, outcome.Message("SCHEDULE_SENT"),
		"schedule saved for the pocket application")
}
