package usecase

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"BlueBatch/internal/domain/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidatorConfig carries the quality thresholds, immutable after start.
type ValidatorConfig struct {
	MissingDataThreshold float64
	MinBars              int
	StrictMinBars        bool
}

// ValidationReport carries non-blocking findings for a record that passed.
type ValidationReport struct {
	Warnings []models.ValidationIssue
}

// RecordValidator checks structural completeness and field-level constraints
// of one raw record. Pure over its input; a failure names every violated
// constraint, not just the first.
type RecordValidator struct {
	cfg ValidatorConfig
}

func NewRecordValidator(cfg ValidatorConfig) *RecordValidator {
	return &RecordValidator{cfg: cfg}
}

// Validate returns a report of warnings, or a terminal UnitError classified
// as schema, ordering or quality failure.
func (v *RecordValidator) Validate(rec *models.RawRecord) (*ValidationReport, *models.UnitError) {
	if issues := v.structuralIssues(rec); len(issues) > 0 {
		return nil, models.NewSchemaError(issues)
	}

	bars := rec.Chart.Prices
	for i := 1; i < len(bars); i++ {
		if bars[i].PriceDate <= bars[i-1].PriceDate {
			return nil, models.NewOrderingError(i, bars[i-1].PriceDate, bars[i].PriceDate)
		}
	}

	report := &ValidationReport{}
	var hard []models.ValidationIssue

	if ratio := missingRatio(bars); ratio > v.cfg.MissingDataThreshold {
		hard = append(hard, models.ValidationIssue{
			Code:    "ERR_MISSING_DATA",
			Field:   "chart.prices",
			Message: fmt.Sprintf("missing-data ratio %.2f exceeds threshold %.2f", ratio, v.cfg.MissingDataThreshold),
			Params:  map[string]interface{}{"ratio": ratio, "threshold": v.cfg.MissingDataThreshold},
		})
	}

	if len(bars) < v.cfg.MinBars {
		issue := models.ValidationIssue{
			Code:    "ERR_MIN_BARS",
			Field:   "chart.prices",
			Message: fmt.Sprintf("only %d bars, minimum is %d", len(bars), v.cfg.MinBars),
			Params:  map[string]interface{}{"bars": len(bars), "min": v.cfg.MinBars},
		}
		if v.cfg.StrictMinBars {
			hard = append(hard, issue)
		} else {
			report.Warnings = append(report.Warnings, issue)
		}
	}

	if len(hard) > 0 {
		return nil, models.NewQualityError(hard)
	}
	return report, nil
}

// structuralIssues runs the tagged-schema check plus the numeric-range sweep
// and collects every violation.
func (v *RecordValidator) structuralIssues(rec *models.RawRecord) []models.ValidationIssue {
	var issues []models.ValidationIssue

	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				issues = append(issues, models.ValidationIssue{
					Code:    "ERR_" + strings.ToUpper(e.Tag()),
					Field:   fieldPath(e),
					Message: issueMessage(e),
					Params:  issueParams(e),
				})
			}
		} else {
			issues = append(issues, models.ValidationIssue{
				Code:    "ERR_UNKNOWN",
				Message: err.Error(),
			})
		}
	}

	if rec.Chart != nil {
		if len(rec.Chart.Prices) == 0 {
			issues = append(issues, models.ValidationIssue{
				Code:    "ERR_EMPTY",
				Field:   "chart.prices",
				Message: "bar list is empty",
			})
		}
		for i, bar := range rec.Chart.Prices {
			for name, val := range map[string]float64{
				"open": bar.Open, "high": bar.High, "low": bar.Low,
				"close": bar.Close, "volume": bar.Volume,
			} {
				if math.IsNaN(val) || math.IsInf(val, 0) {
					issues = append(issues, models.ValidationIssue{
						Code:    "ERR_NUMERIC_RANGE",
						Field:   fmt.Sprintf("chart.prices[%d].%s", i, name),
						Message: fmt.Sprintf("%s at index %d is not a representable number", name, i),
					})
				}
			}
		}
	}

	return issues
}

// missingRatio is the fraction of bars carrying a null rating or
// consolidation value.
func missingRatio(bars []models.PriceBar) float64 {
	if len(bars) == 0 {
		return 0
	}
	missing := 0
	for _, b := range bars {
		if b.RLST == nil || b.BC == nil {
			missing++
		}
	}
	return float64(missing) / float64(len(bars))
}

// fieldPath trims the root struct name off the validator namespace so errors
// read like input paths (Chart.Prices[2].RLST).
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func issueMessage(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

func issueParams(fe validator.FieldError) map[string]interface{} {
	params := make(map[string]interface{})

	switch fe.Tag() {
	case "min", "gte":
		params["min"] = fe.Param()
	case "max", "lte":
		params["max"] = fe.Param()
	case "gt", "lt":
		params["value"] = fe.Param()
	}

	if len(params) == 0 {
		return nil
	}
	return params
}
