package timing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// JSONLoader reads the player's own JSON timing format:
//
//	{
//	  "metadata": {"title": "Song title", "author": "Band", ...},
//	  "karaoke": [
//	    {
//	      "syllables": ["En", "ter ", "your ", "ly", "rics ", "here!"],
//	      "line_start": 10,
//	      "start_times": [0, 0.2, 0.4, 0.6, 0.8, 0.9],
//	      "end_time": 1.2
//	    }
//	  ]
//	}
//
// start_times are relative to line_start, end_time is relative to line_start
// and marks the end of the last syllable.
type JSONLoader struct{}

type jsonDocument struct {
	Metadata map[string]any     `json:"metadata"`
	Karaoke  *[]json.RawMessage `json:"karaoke"`
}

type jsonLine struct {
	Syllables  *[]string  `json:"syllables"`
	LineStart  *float64   `json:"line_start"`
	StartTimes *[]float64 `json:"start_times"`
	EndTime    *float64   `json:"end_time"`
}

func (JSONLoader) Name() string {
	return "karaoke JSON"
}

func (JSONLoader) Extensions() []string {
	return []string{".json"}
}

func (JSONLoader) Load(r io.Reader) (*Song, error) {
	var doc jsonDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, malformed(DocumentLevel, "", "invalid JSON: %v", err)
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, malformed(DocumentLevel, "", "trailing data after the JSON document")
	}

	metadata, err := parseMetadata(doc.Metadata)
	if err != nil {
		return nil, err
	}

	if doc.Karaoke == nil {
		return nil, malformed(DocumentLevel, "karaoke", "missing")
	}

	lines := make([]Line, 0, len(*doc.Karaoke))
	for i, raw := range *doc.Karaoke {
		var record jsonLine
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, malformed(i, "", "invalid line record: %v", err)
		}
		line, err := parseLine(i, record)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return &Song{Metadata: metadata, Lines: lines}, nil
}

// parseMetadata requires the known fields to be strings or null. Extra
// fields of other types are ignored.
func parseMetadata(raw map[string]any) (Metadata, error) {
	var badField string
	get := func(key string) string {
		switch v := raw[key].(type) {
		case nil:
			return ""
		case string:
			return v
		default:
			if badField == "" {
				badField = key
			}
			return ""
		}
	}

	m := Metadata{
		Title:               get("title"),
		Author:              get("author"),
		Album:               get("album"),
		Instruments:         get("instruments"),
		Singer:              get("singer"),
		Features:            get("features"),
		KaraokeLyricsAuthor: get("karaoke_lyrics_author"),
		KaraokeAuthor:       get("karaoke_author"),
		Copyright:           get("copyright"),
	}
	if badField != "" {
		return Metadata{}, malformed(DocumentLevel, "metadata."+badField, "must be a string")
	}
	if m.Title == "" {
		return Metadata{}, malformed(DocumentLevel, "metadata.title", "missing")
	}

	known := map[string]bool{
		"title": true, "author": true, "album": true, "instruments": true, "singer": true,
		"features": true, "karaoke_lyrics_author": true, "karaoke_author": true, "copyright": true,
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, ok := raw[k].(string)
		if known[k] || !ok {
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]string)
		}
		m.Extra[k] = v
	}

	return m, nil
}

func parseLine(index int, record jsonLine) (Line, error) {
	switch {
	case record.Syllables == nil:
		return Line{}, malformed(index, "syllables", "missing")
	case record.LineStart == nil:
		return Line{}, malformed(index, "line_start", "missing")
	case record.StartTimes == nil:
		return Line{}, malformed(index, "start_times", "missing")
	case record.EndTime == nil:
		return Line{}, malformed(index, "end_time", "missing")
	}

	syllables := *record.Syllables
	startTimes := *record.StartTimes
	if len(startTimes) != len(syllables) {
		return Line{}, malformed(index, "start_times", "has %d entries for %d syllables", len(startTimes), len(syllables))
	}

	offsets := make([]float64, 0, len(startTimes)+1)
	offsets = append(offsets, startTimes...)
	offsets = append(offsets, *record.EndTime)

	for j := 1; j < len(offsets); j++ {
		if offsets[j] < offsets[j-1] {
			field := "start_times"
			if j == len(offsets)-1 {
				field = "end_time"
			}
			return Line{}, malformed(index, field, "offset %s is before the previous offset %s",
				formatSeconds(offsets[j]), formatSeconds(offsets[j-1]))
		}
	}

	return Line{
		Syllables: append([]string(nil), syllables...),
		Offsets:   offsets,
		Start:     *record.LineStart,
	}, nil
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%gs", v)
}
