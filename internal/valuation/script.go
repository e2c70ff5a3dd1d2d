package valuation

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"estatesim/internal/models"
)

var ErrEmptyAppraisal = errors.New("valuation script returned no appraisal")

// ScriptProvider runs an external price lookup script. The property is written to the
// script's stdin as JSON and the script answers with line-delimited JSON messages.
type ScriptProvider struct {
	logger  *logrus.Logger
	command string
	args    []string
	timeout time.Duration
}

// AppraisalRequest is the payload sent to the script
type AppraisalRequest struct {
	Location         string  `json:"location"`
	ConstructionYear int     `json:"construction_year"`
	StructureKind    string  `json:"structure_kind"`
	LandRightKind    string  `json:"land_right_kind"`
	LandArea         float64 `json:"land_area"`
	BuildingArea     float64 `json:"building_area"`
	FloorCount       float64 `json:"floor_count"`
	RoadPrice        int     `json:"road_price"`
}

// ScriptMessage represents a message from the script
type ScriptMessage struct {
	Type string          `json:"type"` // "appraisal", "log" or "error"
	Data json.RawMessage `json:"data"`
}

// NewScriptProvider creates a provider running scriptPath. Python scripts are run
// with python3, anything else is executed directly.
func NewScriptProvider(scriptPath string, timeout time.Duration, logger *logrus.Logger) *ScriptProvider {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	absPath, err := filepath.Abs(scriptPath)
	if err != nil {
		logger.WithError(err).Error("Failed to get absolute path to valuation script")
		absPath = scriptPath
	}

	p := &ScriptProvider{
		logger:  logger,
		command: absPath,
		timeout: timeout,
	}
	if filepath.Ext(absPath) == ".py" {
		p.command = "python3"
		p.args = []string{absPath}
	}
	return p
}

// NewProvider picks the provider for the configured script. An empty script uses the
// placeholder appraisal; args make the script run as a plain command.
func NewProvider(script string, args []string, timeout time.Duration, logger *logrus.Logger) models.ValuationProvider {
	switch {
	case script == "":
		return NewStaticProvider()
	case len(args) > 0:
		return NewCommandProvider(script, args, timeout, logger)
	default:
		return NewScriptProvider(script, timeout, logger)
	}
}

// NewCommandProvider creates a provider running an arbitrary command
func NewCommandProvider(command string, args []string, timeout time.Duration, logger *logrus.Logger) *ScriptProvider {
	p := NewScriptProvider(command, timeout, logger)
	p.command = command
	p.args = args
	return p
}

func newAppraisalRequest(p *models.Property) AppraisalRequest {
	req := AppraisalRequest{
		Location:      p.Location,
		StructureKind: p.StructureKind.String(),
		LandRightKind: p.LandRightKind.String(),
		LandArea:      p.LandArea,
		BuildingArea:  p.BuildingArea,
		FloorCount:    p.FloorCount,
		RoadPrice:     p.RoadPrice,
	}
	if !p.ConstructionDate.IsZero() {
		req.ConstructionYear = p.ConstructionDate.Year()
	}
	return req
}

// Estimate runs the script and returns the last appraisal it reported
func (s *ScriptProvider) Estimate(ctx context.Context, p *models.Property) (models.Appraisal, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	request := newAppraisalRequest(p)
	s.logger.WithFields(logrus.Fields{
		"location":   request.Location,
		"road_price": request.RoadPrice,
		"land_area":  request.LandArea,
	}).Info("Starting valuation script")

	inputData, err := json.Marshal(request)
	if err != nil {
		return models.Appraisal{}, fmt.Errorf("failed to marshal appraisal request: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.command, s.args...)
	cmd.Stdin = bytes.NewBuffer(inputData)
	cmd.WaitDelay = time.Second
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.Output()
	if stderr.Len() > 0 {
		s.logger.WithField("stderr", stderr.String()).Warn("Valuation script wrote to stderr")
	}
	if err != nil {
		return models.Appraisal{}, fmt.Errorf("valuation script failed: %w", err)
	}

	var appraisal *models.Appraisal
	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	for scanner.Scan() {
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			continue
		}

		var msg ScriptMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			s.logger.WithError(err).Error("Failed to parse valuation script message")
			continue
		}

		switch msg.Type {
		case "appraisal":
			var a models.Appraisal
			if err := json.Unmarshal(msg.Data, &a); err != nil {
				return models.Appraisal{}, fmt.Errorf("failed to parse appraisal: %w", err)
			}
			appraisal = &a

		case "log":
			var text string
			if err := json.Unmarshal(msg.Data, &text); err == nil {
				s.logger.WithField("message", text).Debug("Valuation script")
			}

		case "error":
			var errMsg struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(msg.Data, &errMsg); err != nil {
				s.logger.WithError(err).Error("Failed to parse error message")
				continue
			}
			return models.Appraisal{}, fmt.Errorf("valuation script error: %s", errMsg.Message)
		}
	}
	if err := scanner.Err(); err != nil {
		return models.Appraisal{}, fmt.Errorf("failed to read valuation script output: %w", err)
	}

	if appraisal == nil {
		return models.Appraisal{}, ErrEmptyAppraisal
	}

	s.logger.WithFields(logrus.Fields{
		"building_value": appraisal.BuildingValue,
		"land_value":     appraisal.LandValue,
		"total_value":    appraisal.TotalValue,
	}).Info("Valuation script completed")

	return *appraisal, nil
}
