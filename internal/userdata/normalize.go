package userdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

var (
	// ErrUnavailable covers every failure to obtain drawable data for a user.
	ErrUnavailable = errors.New("user data unavailable")
	// ErrMalformed is returned when a payload does not have the expected shape.
	ErrMalformed = fmt.Errorf("malformed payload: %w", ErrUnavailable)
)

const dayLayout = "2006-01-02"

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// unwrapData decodes the {"data": ...} envelope every backend response uses.
func unwrapData(raw []byte, v any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: decode envelope: %w", ErrMalformed, err)
	}
	if len(envelope.Data) == 0 || bytes.Equal(envelope.Data, []byte("null")) {
		return malformed("missing data envelope")
	}

	dec := json.NewDecoder(bytes.NewReader(envelope.Data))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode data: %w", ErrMalformed, err)
	}
	return nil
}

// NormalizeUser decodes the main user payload. Older payloads carry the
// daily score under "score"; it is renamed to todayScore and every other
// field is left as is.
func NormalizeUser(raw []byte) (*User, error) {
	var payload struct {
		ID         int       `json:"id"`
		UserInfos  UserInfos `json:"userInfos"`
		TodayScore *float64  `json:"todayScore"`
		Score      *float64  `json:"score"`
		KeyData    KeyData   `json:"keyData"`
	}
	if err := unwrapData(raw, &payload); err != nil {
		return nil, err
	}

	u := &User{
		ID:      payload.ID,
		Infos:   payload.UserInfos,
		KeyData: payload.KeyData,
	}
	switch {
	case payload.Score != nil:
		u.TodayScore = *payload.Score
		u.HasScore = true
	case payload.TodayScore != nil:
		u.TodayScore = *payload.TodayScore
		u.HasScore = true
	}

	return u, nil
}

func NormalizeActivity(raw []byte) (*Activity, error) {
	var payload struct {
		UserID   int `json:"userId"`
		Sessions []struct {
			Day      string  `json:"day"`
			Kilogram float64 `json:"kilogram"`
			Calories float64 `json:"calories"`
		} `json:"sessions"`
	}
	if err := unwrapData(raw, &payload); err != nil {
		return nil, err
	}

	a := &Activity{
		UserID:   payload.UserID,
		Sessions: make([]Session, 0, len(payload.Sessions)),
	}
	for i, s := range payload.Sessions {
		day, err := time.Parse(dayLayout, s.Day)
		if err != nil {
			return nil, fmt.Errorf("%w: session %d day: %w", ErrMalformed, i, err)
		}
		a.Sessions = append(a.Sessions, Session{
			Day:      day,
			Kilogram: s.Kilogram,
			Calories: s.Calories,
		})
	}

	return a, nil
}

func NormalizeAverageSessions(raw []byte) (*AverageSessions, error) {
	var payload AverageSessions
	if err := unwrapData(raw, &payload); err != nil {
		return nil, err
	}

	for i, s := range payload.Sessions {
		if s.Day < 1 || s.Day > 7 {
			return nil, malformed("average session %d: day %d not in 1..7", i, s.Day)
		}
	}
	if payload.Sessions == nil {
		payload.Sessions = []AverageSession{}
	}

	return &payload, nil
}

// NormalizePerformance joins the kind lookup table with the value list,
// keeping the order of the value list.
func NormalizePerformance(raw []byte) (*Performance, error) {
	var payload struct {
		UserID int               `json:"userId"`
		Kind   map[string]string `json:"kind"`
		Data   []struct {
			Value float64 `json:"value"`
			Kind  int     `json:"kind"`
		} `json:"data"`
	}
	if err := unwrapData(raw, &payload); err != nil {
		return nil, err
	}

	p := &Performance{
		UserID:  payload.UserID,
		Entries: make([]PerformanceEntry, 0, len(payload.Data)),
	}
	for i, d := range payload.Data {
		kind, ok := payload.Kind[strconv.Itoa(d.Kind)]
		if !ok {
			return nil, malformed("performance %d: unknown kind %d (known %v)", i, d.Kind, knownKinds(payload.Kind))
		}
		p.Entries = append(p.Entries, PerformanceEntry{
			Kind:  kind,
			Label: KindLabel(kind),
			Value: d.Value,
		})
	}

	return p, nil
}

func knownKinds(kinds map[string]string) []string {
	keys := make([]string, 0, len(kinds))
	for k := range kinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
