package handle

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"kids-lecture/api/internal/lecture"
	"kids-lecture/api/internal/metrics"
)

const maxBodyBytes = 64 << 10

// GenerateLecture serves POST /api/lectures/generate.
func (h *Handle) GenerateLecture(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req GenerateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		metrics.RecordValidationFailure("bad_json")
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req.Topic = strings.TrimSpace(req.Topic)

	if msg := h.validate.check(req); msg != "" {
		reason := "required"
		if msg == msgGradeRange {
			reason = "grade_range"
		}
		metrics.RecordValidationFailure(reason)
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}
	grade, _ := lecture.ParseGrade(string(req.Grade))

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	start := time.Now()
	lec, err := h.gen.Generate(ctx, req.Topic, grade)
	took := time.Since(start).Seconds()
	if err != nil {
		metrics.RecordGeneration(h.gen.EngineName(), grade, "error", took)
		h.log.Error("error generating lecture", "topic", req.Topic, "grade", grade, "error", err)
		writeMessage(w, http.StatusInternalServerError, msgGenerateFail)
		return
	}

	lec.Content = h.sanitizer.HTML(lec.Content)
	if lec.Content == "" {
		metrics.RecordGeneration(h.gen.EngineName(), grade, "empty", took)
		h.log.Error("lecture content empty after sanitizing", "topic", req.Topic, "grade", grade)
		writeMessage(w, http.StatusInternalServerError, msgGenerateFail)
		return
	}
	metrics.RecordGeneration(h.gen.EngineName(), grade, "ok", took)
	writeJSON(w, http.StatusOK, lec)
}
