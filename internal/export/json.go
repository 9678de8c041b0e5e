package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/crtsim/internal/storage"
)

type RunData struct {
	Meta    storage.RunMetadata `json:"meta"`
	Ticks   []int64             `json:"ticks"`
	X       []float64           `json:"x"`
	Y       []float64           `json:"y"`
	Visible []bool              `json:"visible"`
}

func newRunData(meta storage.RunMetadata, samples []storage.Sample) RunData {
	data := RunData{
		Meta:    meta,
		Ticks:   make([]int64, len(samples)),
		Visible: make([]bool, len(samples)),
	}
	data.X, data.Y = storage.Series(samples)
	for i, s := range samples {
		data.Ticks[i] = s.Tick
		data.Visible[i] = s.Visible
	}
	return data
}

func WriteJSON(w io.Writer, meta storage.RunMetadata, samples []storage.Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newRunData(meta, samples))
}

func ExportJSON(path string, meta storage.RunMetadata, samples []storage.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, samples)
}
