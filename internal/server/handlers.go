package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/GoRocky-symptoms/internal/details"
	"github.com/Skufu/GoRocky-symptoms/internal/predict"
)

const (
	msgNoSymptoms = "Please enter at least one symptom."
	msgNoLocation = "Please select your location."
)

// validate mirrors the form checks: a missing location takes precedence.
func validate(symptoms []string, location string) string {
	msg := ""
	if len(symptoms) == 0 {
		msg = msgNoSymptoms
	}
	if location == "" {
		msg = msgNoLocation
	}
	return msg
}

func (h *handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

func (h *handler) predictForm(c *gin.Context) {
	location := strings.TrimSpace(c.PostForm("state"))
	raw := c.PostForm("symptoms")
	symptoms := predict.NormalizeSymptoms(raw)

	if msg := validate(symptoms, location); msg != "" {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"message":            msg,
			"submitted_symptoms": raw,
			"submitted_location": location,
		})
		return
	}

	disease, explanation := h.scorer.Predict(symptoms, location)
	bundle := h.details.Lookup(disease)

	c.HTML(http.StatusOK, "index.html", gin.H{
		"predicted_disease":  disease,
		"confidence_message": explanation,
		"dis_des":            bundle.Description,
		"my_precautions":     bundle.Precautions,
		"medications":        bundle.Medications,
		"my_diet":            bundle.Diet,
		"workout":            bundle.Workout,
		"submitted_symptoms": raw,
		"submitted_location": location,
	})
}

// symptomList accepts either a JSON array of symptoms or one comma-separated string.
type symptomList []string

func (s *symptomList) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		*s = predict.NormalizeSymptoms(text)
		return nil
	}

	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return errors.New("symptoms must be a string or an array of strings")
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if tok := predict.NormalizeSymptom(it); tok != "" {
			out = append(out, tok)
		}
	}
	*s = out
	return nil
}

type predictRequest struct {
	Symptoms symptomList `json:"symptoms"`
	Location string      `json:"location"`
}

type predictResponse struct {
	predict.Result
	Details details.Bundle `json:"details"`
}

func (h *handler) predictJSON(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	req.Location = strings.TrimSpace(req.Location)
	if msg := validate(req.Symptoms, req.Location); msg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation_failed", "message": msg})
		return
	}

	result := h.scorer.PredictAt(req.Symptoms, req.Location, h.scorer.Season())
	c.JSON(http.StatusOK, predictResponse{
		Result:  result,
		Details: h.details.Lookup(result.Disease),
	})
}

func (h *handler) listDiseases(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"diseases": h.diseases.Diseases()})
}

func (h *handler) diseaseDetails(c *gin.Context) {
	name := c.Param("name")
	if !h.known[name] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown disease"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"disease": name, "details": h.details.Lookup(name)})
}
