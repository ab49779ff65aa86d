package userdata

import (
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/fitdash/internal/chart"
)

type UserInfos struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
}

type KeyData struct {
	CalorieCount      float64 `json:"calorieCount"`
	ProteinCount      float64 `json:"proteinCount"`
	CarbohydrateCount float64 `json:"carbohydrateCount"`
	LipidCount        float64 `json:"lipidCount"`
}

// User is the canonical main user record. TodayScore is the completion
// ratio of the daily goal, in [0, 1].
type User struct {
	ID         int       `json:"id"`
	Infos      UserInfos `json:"userInfos"`
	TodayScore float64   `json:"todayScore"`
	HasScore   bool      `json:"-"`
	KeyData    KeyData   `json:"keyData"`
}

// ScorePercent is the today score on the 0..100 gauge scale.
func (u *User) ScorePercent() float64 {
	return u.TodayScore * 100
}

type Session struct {
	Day      time.Time `json:"day"`
	Kilogram float64   `json:"kilogram"`
	Calories float64   `json:"calories"`
}

type Activity struct {
	UserID   int       `json:"userId"`
	Sessions []Session `json:"sessions"`
}

func (a *Activity) Empty() bool {
	return a == nil || len(a.Sessions) == 0
}

// Series pairs weight (primary) with burned calories (secondary), one
// category per session, labelled with the session day of month.
func (a *Activity) Series() chart.Series {
	s := make(chart.Series, 0, len(a.Sessions))
	for _, session := range a.Sessions {
		s = append(s, chart.Category{
			Label:        strconv.Itoa(session.Day.Day()),
			Value:        session.Kilogram,
			Secondary:    session.Calories,
			HasSecondary: true,
			Tooltip:      fmt.Sprintf("Poids : %s kg", formatValue(session.Kilogram)),
			SecondaryTip: fmt.Sprintf("Calories : %s kCal", formatValue(session.Calories)),
		})
	}
	return s
}

type AverageSession struct {
	Day           int     `json:"day"`
	SessionLength float64 `json:"sessionLength"`
}

type AverageSessions struct {
	UserID   int              `json:"userId"`
	Sessions []AverageSession `json:"sessions"`
}

func (a *AverageSessions) Empty() bool {
	return a == nil || len(a.Sessions) == 0
}

func (a *AverageSessions) Series() chart.Series {
	s := make(chart.Series, 0, len(a.Sessions))
	for _, session := range a.Sessions {
		s = append(s, chart.Category{
			Label:   WeekdayInitial(session.Day),
			Value:   session.SessionLength,
			Tooltip: fmt.Sprintf("Durée : %s min", formatValue(session.SessionLength)),
		})
	}
	return s
}

type PerformanceEntry struct {
	Kind  string  `json:"kind"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Performance struct {
	UserID  int                `json:"userId"`
	Entries []PerformanceEntry `json:"entries"`
}

func (p *Performance) Empty() bool {
	return p == nil || len(p.Entries) == 0
}

func (p *Performance) Series() chart.Series {
	s := make(chart.Series, 0, len(p.Entries))
	for _, e := range p.Entries {
		s = append(s, chart.Category{
			Label:   e.Label,
			Value:   e.Value,
			Tooltip: fmt.Sprintf("%s : %s", e.Label, formatValue(e.Value)),
		})
	}
	return s
}

var kindLabels = map[string]string{
	"cardio":    "Cardio",
	"energy":    "Energie",
	"endurance": "Endurance",
	"strength":  "Force",
	"speed":     "Vitesse",
	"intensity": "Intensité",
}

// KindLabel returns the display label of a performance kind; unknown kinds
// are shown as they came.
func KindLabel(kind string) string {
	if label, ok := kindLabels[kind]; ok {
		return label
	}
	return kind
}

var weekdayInitials = [7]string{"L", "M", "M", "J", "V", "S", "D"}

// WeekdayInitial maps 1 (monday) .. 7 (sunday) to its initial.
func WeekdayInitial(day int) string {
	if day < 1 || day > 7 {
		return ""
	}
	return weekdayInitials[day-1]
}

type Indicator struct {
	Key   string  `json:"key"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

func (i Indicator) Display() string {
	return formatValue(i.Value) + i.Unit
}

// Indicators lists the key data in the order they are displayed.
func (k KeyData) Indicators() []Indicator {
	return []Indicator{
		{Key: "calories", Name: "Calories", Value: k.CalorieCount, Unit: "kCal"},
		{Key: "proteins", Name: "Protéines", Value: k.ProteinCount, Unit: "g"},
		{Key: "carbohydrates", Name: "Glucides", Value: k.CarbohydrateCount, Unit: "g"},
		{Key: "lipids", Name: "Lipides", Value: k.LipidCount, Unit: "g"},
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Records is everything the dashboard draws for one user.
type Records struct {
	User            *User            `json:"user,omitempty"`
	Activity        *Activity        `json:"activity,omitempty"`
	AverageSessions *AverageSessions `json:"averageSessions,omitempty"`
	Performance     *Performance     `json:"performance,omitempty"`
}
