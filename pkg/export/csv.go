package export

import (
	"bytes"
	"encoding/csv"
)

// WriteCSV renders rows under a message,response,timestamp header.
func WriteCSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"message", "response", "timestamp"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Message, r.Response, r.Timestamp.Format(TimestampLayout)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
