package google

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bankreport/internal/core"

	"google.golang.org/api/googleapi"
)

// parseRows converts a values matrix (as returned by Sheets API) into
// transactions. Rows are headerless; fully empty rows are skipped.
func parseRows(source string, values [][]interface{}) ([]core.Transaction, error) {
	out := make([]core.Transaction, 0, len(values))
	for i, raw := range values {
		record := toStrings(raw)
		if core.IsBlank(record) {
			continue
		}
		t, err := core.ParseRecord(source, i+1, record)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		switch x := v.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = strings.TrimSpace(x)
		case float64:
			out[i] = strconv.FormatFloat(x, 'f', -1, 64)
		default:
			out[i] = strings.TrimSpace(fmt.Sprint(x))
		}
	}
	return out
}

// isNotFound reports a missing spreadsheet (404) or a missing sheet tab,
// which the API answers with 400 "Unable to parse range".
func isNotFound(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	switch gerr.Code {
	case http.StatusNotFound:
		return true
	case http.StatusBadRequest:
		return strings.Contains(gerr.Message, "Unable to parse range")
	}
	return false
}
