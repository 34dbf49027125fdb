package output

import (
	"encoding/json"
	"io"

	"github.com/pranshuparmar/pidtree/internal/tree"
	"github.com/pranshuparmar/pidtree/pkg/model"
)

// Report is the JSON document for one command run.
type Report struct {
	Roots []*model.PidNode `json:"roots"`
	Stats *tree.Stats      `json:"stats,omitempty"`
}

func ToJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	s, err := ToJSON(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s+"\n")
	return err
}
