package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"
)

type ExportData struct {
	Exported time.Time `json:"exported"`
	Count    int       `json:"count"`
	Messages []Message `json:"messages"`
}

// ExportJSON writes msgs as an indented JSON document.
func ExportJSON(w io.Writer, msgs []Message) error {
	data := ExportData{
		Exported: time.Now().UTC(),
		Count:    len(msgs),
		Messages: msgs,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes msgs with a header row.
func ExportCSV(w io.Writer, msgs []Message) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "role", "content", "timestamp"}); err != nil {
		return err
	}
	for _, m := range msgs {
		row := []string{
			strconv.FormatInt(m.ID, 10),
			m.Role,
			m.Content,
			m.Timestamp.Format(time.RFC3339Nano),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
