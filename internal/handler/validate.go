package handler

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/zerox-toml/superworld-proof-of-place/internal/middleware"
	"github.com/zerox-toml/superworld-proof-of-place/internal/model"
	"github.com/zerox-toml/superworld-proof-of-place/internal/service"
	"github.com/zerox-toml/superworld-proof-of-place/pkg/hash"
)

type ValidateHandler struct {
	engine *service.Engine
}

func NewValidateHandler(engine *service.Engine) *ValidateHandler {
	return &ValidateHandler{engine: engine}
}

// Validate handles POST /api/validate. It parses the multipart form,
// enforces the boundary checks, and hands a well-formed request to the
// scoring engine. The engine itself never fails a request.
func (h *ValidateHandler) Validate(c fiber.Ctx) error {
	text, errMsg := middleware.ValidateText(c.FormValue("text"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	loc, errMsg := parseLocation(c)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	ts, errMsg := middleware.ValidateTimestamp(c.FormValue("timestamp"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	submitterID, errMsg := middleware.ValidateSubmitterID(c.FormValue("submitter_id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if submitterID != "" {
		// Raw identifiers never reach the engine or the indices.
		submitterID = hash.HashSubmitterID(submitterID)
	}

	image, errMsg := readImage(c)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_IMAGE", errMsg)
	}

	req := model.ValidationRequest{
		Text:        text,
		Image:       image,
		Location:    loc,
		Timestamp:   ts,
		SubmitterID: submitterID,
	}

	start := time.Now()
	resp := h.engine.Validate(c.Context(), req)
	Metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	Metrics.ValidationsTotal.WithLabelValues(string(resp.Classification)).Inc()

	return c.JSON(resp)
}

// parseLocation builds the location variant from the form: a POI claim when
// poi_name is present, otherwise a lat/lng pair.
func parseLocation(c fiber.Ctx) (model.Location, string) {
	poiName := c.FormValue("poi_name")
	latStr, lngStr := c.FormValue("lat"), c.FormValue("lng")

	switch {
	case poiName != "":
		return middleware.ValidatePOI(poiName, c.FormValue("poi_city"))
	case latStr != "" || lngStr != "":
		coords, errMsg := middleware.ValidateCoordinates(latStr, lngStr)
		if errMsg != "" {
			return model.Location{}, errMsg
		}
		return model.Location{Coords: coords}, ""
	default:
		return model.Location{}, "either poi_name or lat/lng is required"
	}
}

// readImage loads the optional image part, enforcing the size limit.
func readImage(c fiber.Ctx) ([]byte, string) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		// No image attached: neutral, not an error.
		return nil, ""
	}
	if fh.Size > middleware.MaxImageBytes {
		return nil, "image must be at most 10 MiB"
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "image could not be read"
	}
	defer f.Close()

	image, err := io.ReadAll(io.LimitReader(f, middleware.MaxImageBytes))
	if err != nil {
		return nil, "image could not be read"
	}
	return image, ""
}
