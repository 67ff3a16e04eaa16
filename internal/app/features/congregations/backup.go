// internal/app/features/congregations/backup.go
package congregations

import (
	"context"
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	"github.com/dalemusser/conghub/internal/app/system/inputval"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/conghub/internal/app/system/timeouts"
	"github.com/dalemusser/conghub/internal/domain/models"
)

// ServeLastBackup reports who made the most recent backup and when, or
// NO_BACKUP when the congregation has never been backed up. Unlike the
// save/get routes this one answers the plain congregation-id code for a
// missing identifier.
func (h *Handler) ServeLastBackup(w http.ResponseWriter, r *http.Request) {
	access, ok := h.Gate.ResolveMember(w, r, congpolicy.MissingCongID)
	if !ok {
		return
	}

	if access.Cong.LastBackup == nil {
		h.Out.Info(w, r, http.StatusOK, outcome.Message("NO_BACKUP"), "no backup on record")
		return
	}

	h.Out.Info(w, r, http.StatusOK, access.Cong.LastBackup, "last backup retrieved")
}

// HandleSaveBackup replaces the congregation's six backup sections and stamps
// who sent it and when.
func (h *Handler) HandleSaveBackup(w http.ResponseWriter, r *http.Request) {
	access, ok := h.Gate.ResolveMember(w, r, congpolicy.MissingRequestID)
	if !ok {
		return
	}

	var in models.Backup
	if errs := inputval.DecodeBody(r, &in); !errs.Empty() {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: "+errs.Join())
		return
	}

	var errs inputval.Errors
	if in.CongPersons == nil {
		errs.Add("cong_persons", "is required")
	}
	if in.CongDeleted == nil {
		errs.Add("cong_deleted", "is required")
	}
	if in.CongSchedule == nil {
		errs.Add("cong_schedule", "is required")
	}
	if in.CongSourceMaterial == nil {
		errs.Add("cong_sourceMaterial", "is required")
	}
	if in.CongSwsPocket == nil {
		errs.Add("cong_swsPocket", "is required")
	}
	if in.CongSettings == nil {
		errs.Add("cong_settings", "is required")
	}
	if !errs.Empty() {
		h.Out.Warn(w, r, http.StatusBadRequest, outcome.BadRequest(), "invalid input: "+errs.Join())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Congs.SaveBackup(ctx, access.Cong.ID, in, access.Email); err != nil {
		h.Out.Error(w, r, err)
		return
	}

	h.Out.Info(w, r, http.StatusOK, outcome.Message("BACKUP_SENT"), "backup saved")
}

// ServeBackup returns the stored backup sections verbatim.
func (h *Handler) ServeBackup(w http.ResponseWriter, r *http.Request) {
	access, ok := h.Gate.ResolveMember(w, r, congpolicy.MissingRequestID)
	if !ok {
		return
	}

	backup := models.Backup{
		CongPersons:        access.Cong.CongPersons,
		CongDeleted:        access.Cong.CongDeleted,
		CongSchedule:       access.Cong.CongSchedule,
		CongSourceMaterial: access.Cong.CongSourceMaterial,
		CongSwsPocket:      access.Cong.CongSwsPocket,
		CongSettings:       access.Cong.CongSettings,
	}

	h.Out.Info(w, r, http.StatusOK, backup, "backup retrieved")
}
