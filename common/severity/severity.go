package severity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/projectdiscovery/goflags"
)

type Severity int

const (
	Info Severity = iota
	Low
	Medium
	High
	Critical
	limit
)

var severityMappings = map[Severity]string{
	Info:     "info",
	Low:      "low",
	Medium:   "medium",
	High:     "high",
	Critical: "critical",
}

func GetSupportedSeverities() Severities {
	result := Severities{}
	for index := Severity(0); index < limit; index++ {
		if result.severities == nil {
			result.severities = make(map[Severity]interface{})
		}
		result.severities[index] = struct{}{}
	}
	return result
}

func toSeverity(valueToMap string) (Severity, error) {
	normalizedValue := normalizeValue(valueToMap)
	for key, currentValue := range severityMappings {
		if normalizedValue == currentValue {
			return key, nil
		}
	}
	return -1, errors.New("Invalid severity: " + valueToMap)
}

func normalizeValue(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

func (severity Severity) String() string {
	return severityMappings[severity]
}

// Severities used by the goflags library for parsing severity list
type Severities struct {
	severities map[Severity]interface{}
}

func (severities *Severities) Set(values string) error {
	inputSeverities, err := goflags.ToStringSlice(values, goflags.NormalizedStringSliceOptions)
	if err != nil {
		return err
	}
	for _, inputSeverity := range inputSeverities {
		computedSeverity, err := toSeverity(inputSeverity)
		if err != nil {
			return fmt.Errorf("'%s' is not a valid severity", inputSeverity)
		}
		if severities.severities == nil {
			severities.severities = make(map[Severity]interface{})
		}
		severities.severities[computedSeverity] = struct{}{}
	}
	return nil
}

func (severities Severities) String() string {
	return strings.Join(severities.StringSlice(), ", ")
}

func (severities *Severities) IsSet(sv Severity) bool {
	if _, ok := severities.severities[sv]; ok {
		return true
	}
	return false
}

// IsEmpty checks if no severity has been selected
func (severities *Severities) IsEmpty() bool {
	return len(severities.severities) == 0
}

// StringSlice returns the selected severities in increasing order
func (severities Severities) StringSlice() []string {
	var stringSeverities = make([]string, 0)
	for index := Severity(0); index < limit; index++ {
		if _, ok := severities.severities[index]; ok {
			stringSeverities = append(stringSeverities, index.String())
		}
	}
	return stringSeverities
}
