package helper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

func StringToStruct[I any](payload string) (result *I, err error) {
	err = json.Unmarshal([]byte(payload), &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func StringToJSON(payload string) (map[string]interface{}, error) {
	var result map[string]interface{}
	err := json.Unmarshal([]byte(payload), &result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func StringToInt(payload string) (int, error) {
	result, err := strconv.Atoi(payload)
	if err != nil {
		return 0, err
	}

	return result, nil
}

// PriceStringToFloat extracts the numeric value from a display price such as
// "$37.00". Everything except digits and dots is stripped before parsing.
// Unparseable input yields 0.
func PriceStringToFloat(payload string) float64 {
	var sb strings.Builder
	for _, r := range payload {
		if (r >= '0' && r <= '9') || r == '.' {
			sb.WriteRune(r)
		}
	}

	result, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return 0
	}
	return result
}

func StringToUUID(payload string) (uuid.UUID, error) {
	return uuid.Parse(payload)
}
