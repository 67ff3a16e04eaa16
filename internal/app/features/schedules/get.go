// internal/app/features/schedules/get.go
package schedules

import (
	"net/http"

	"github.com/dalemusser/conghub/internal/app/policy/congpolicy"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeSchedule returns the congregation's schedule and source material plus
// the class count and source language from the first settings record. The
// store guarantees a settings record exists for any congregation with a
// saved schedule.
func (h *Handler) ServeSchedule(w http.ResponseWriter, r *http.Request) {
	access, ok := h.Gate.ResolveMember(w, r, congpolicy.MissingCongID)
	if !ok {
		return
	}

	cong := access.Cong
	body := map[string]any{
		"cong_sourceMaterial": cong.CongSourceMaterial,
		"cong_schedule":       cong.CongSchedule,
		"class_count":         firstSetting(cong.CongSettings, "class_count"),
		"source_lang":         firstSetting(cong.CongSettings, "source_lang"),
	}

	h.Out.Info(w, r, http.StatusOK, body, "user has fetched the schedule")
}

// firstSetting extracts a field from the first element of the stored
// settings section. The section round-trips through JSON and BSON, so the
// first element may surface as a bson.M, bson.D, or plain map.
func firstSetting(settings any, key string) any {
	var first any
	switch list := settings.(type) {
	case primitive.A:
		if len(list) == 0 {
			return nil
		}
		first = list[0]
	case []any:
		if len(list) == 0 {
			return nil
		}
		first = list[0]
	default:
		return nil
	}

	switch doc := first.(type) {
	case bson.M:
		return doc[key]
	case map[string]any:
		return doc[key]
	case bson.D:
		for _, e := range doc {
			if e.Key == key {
				return e.Value
			}
		}
	}
	return nil
}
