package userdata

import (
	"errors"
	"testing"
	"time"

	"github.com/2beens/fitdash/internal/chart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userPayload = `{"data":{"id":12,"userInfos":{"firstName":"Karl","lastName":"Dovineau","age":31},
		"todayScore":0.12,"keyData":{"calorieCount":1930,"proteinCount":155,"carbohydrateCount":290,"lipidCount":50}}}`
	legacyUserPayload = `{"data":{"id":18,"userInfos":{"firstName":"Cecilia","lastName":"Ratorez","age":34},
		"score":0.3,"keyData":{"calorieCount":2500,"proteinCount":90,"carbohydrateCount":150,"lipidCount":120}}}`
	activityPayload = `{"data":{"userId":12,"sessions":[
		{"day":"2020-07-01","kilogram":80,"calories":240},
		{"day":"2020-07-02","kilogram":80,"calories":220},
		{"day":"2020-07-03","kilogram":81,"calories":280}]}}`
	averageSessionsPayload = `{"data":{"userId":12,"sessions":[
		{"day":1,"sessionLength":30},{"day":2,"sessionLength":23},{"day":7,"sessionLength":60}]}}`
	performancePayload = `{"data":{"userId":12,
		"kind":{"1":"cardio","2":"energy","3":"endurance","4":"strength","5":"speed","6":"intensity"},
		"data":[{"value":80,"kind":1},{"value":120,"kind":2},{"value":200,"kind":5},{"value":90,"kind":6}]}}`
)

func TestErrMalformedIsUnavailable(t *testing.T) {
	assert.True(t, errors.Is(ErrMalformed, ErrUnavailable))
	_, err := NormalizeUser([]byte("{"))
	assert.ErrorIs(t, err, ErrMalformed)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNormalizeUser(t *testing.T) {
	u, err := NormalizeUser([]byte(userPayload))
	require.NoError(t, err)
	assert.Equal(t, 12, u.ID)
	assert.Equal(t, "Karl", u.Infos.FirstName)
	assert.Equal(t, "Dovineau", u.Infos.LastName)
	assert.True(t, u.HasScore)
	assert.Equal(t, 0.12, u.TodayScore)
	assert.InDelta(t, 12, u.ScorePercent(), 1e-9)
	assert.Equal(t, 155.0, u.KeyData.ProteinCount)
}

func TestNormalizeUser_LegacyScore(t *testing.T) {
	u, err := NormalizeUser([]byte(legacyUserPayload))
	require.NoError(t, err)
	assert.True(t, u.HasScore)
	assert.Equal(t, 0.3, u.TodayScore)
	// the rest is untouched
	assert.Equal(t, 18, u.ID)
	assert.Equal(t, "Ratorez", u.Infos.LastName)
	assert.Equal(t, 2500.0, u.KeyData.CalorieCount)
}

func TestNormalizeUser_NoScore(t *testing.T) {
	u, err := NormalizeUser([]byte(`{"data":{"id":3,"userInfos":{"firstName":"A","lastName":"B","age":20}}}`))
	require.NoError(t, err)
	assert.False(t, u.HasScore)
	assert.Zero(t, u.TodayScore)
}

func TestNormalizeUser_Malformed(t *testing.T) {
	for _, raw := range []string{
		``,
		`not json`,
		`{}`,
		`{"data":null}`,
		`{"data":{"id":"twelve"}}`,
		`[]`,
	} {
		_, err := NormalizeUser([]byte(raw))
		assert.ErrorIs(t, err, ErrMalformed, "payload %q", raw)
	}
}

func TestNormalizeActivity(t *testing.T) {
	a, err := NormalizeActivity([]byte(activityPayload))
	require.NoError(t, err)
	assert.False(t, a.Empty())
	require.Len(t, a.Sessions, 3)
	assert.Equal(t, time.Date(2020, time.July, 2, 0, 0, 0, 0, time.UTC), a.Sessions[1].Day)
	assert.Equal(t, 81.0, a.Sessions[2].Kilogram)

	series := a.Series()
	require.Len(t, series, 3)
	assert.Equal(t, "1", series[0].Label)
	assert.Equal(t, 80.0, series[0].Value)
	assert.Equal(t, 240.0, series[0].Secondary)
	assert.True(t, series.HasSecondary())
	assert.Equal(t, "Poids : 80 kg", series[0].Tooltip)
	assert.Equal(t, "Calories : 240 kCal", series[0].SecondaryTip)
}

func TestActivity_BarsFromPayload(t *testing.T) {
	a, err := NormalizeActivity([]byte(`{"data":{"userId":12,"sessions":[
		{"day":"2024-01-01","kilogram":70,"calories":300},
		{"day":"2024-01-02","kilogram":71,"calories":320}]}}`))
	require.NoError(t, err)

	bars, err := chart.BuildBars(chart.NewFrame(835, 320, chart.Padding{}), a.Series(), chart.DefaultBarOptions())
	require.NoError(t, err)
	assert.Equal(t, 90.0, bars.PrimaryCeiling)
	assert.Equal(t, 330.0, bars.SecondaryCeiling)

	first, ok := bars.Scene().Element("primary-0")
	require.True(t, ok)
	second, ok := bars.Scene().Element("primary-1")
	require.True(t, ok)
	assert.Greater(t, first.Final.Rect.Height, 0.0)
	assert.Greater(t, second.Final.Rect.Height, first.Final.Rect.Height)
	assert.InDelta(t, bars.Baseline, first.Final.Rect.Y+first.Final.Rect.Height, 1e-9)
	assert.Equal(t, "1", bars.Axes[0].Ticks[0].Text)
	assert.Equal(t, "2", bars.Axes[0].Ticks[1].Text)
}

func TestNormalizeActivity_Empty(t *testing.T) {
	a, err := NormalizeActivity([]byte(`{"data":{"userId":1,"sessions":[]}}`))
	require.NoError(t, err)
	assert.True(t, a.Empty())
}

func TestNormalizeActivity_BadDay(t *testing.T) {
	_, err := NormalizeActivity([]byte(`{"data":{"userId":1,"sessions":[{"day":"07/01/2020","kilogram":80,"calories":240}]}}`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestNormalizeAverageSessions(t *testing.T) {
	s, err := NormalizeAverageSessions([]byte(averageSessionsPayload))
	require.NoError(t, err)
	require.Len(t, s.Sessions, 3)

	series := s.Series()
	assert.Equal(t, "L", series[0].Label)
	assert.Equal(t, "M", series[1].Label)
	assert.Equal(t, "D", series[2].Label)
	assert.Equal(t, "Durée : 23 min", series[1].Tooltip)

	_, err = NormalizeAverageSessions([]byte(`{"data":{"userId":1,"sessions":[{"day":8,"sessionLength":30}]}}`))
	assert.ErrorIs(t, err, ErrMalformed)

	empty, err := NormalizeAverageSessions([]byte(`{"data":{"userId":1}}`))
	require.NoError(t, err)
	assert.True(t, empty.Empty())
	assert.NotNil(t, empty.Sessions)
}

func TestNormalizePerformance(t *testing.T) {
	p, err := NormalizePerformance([]byte(performancePayload))
	require.NoError(t, err)
	require.Len(t, p.Entries, 4)

	// order of the data array is kept
	assert.Equal(t, PerformanceEntry{Kind: "cardio", Label: "Cardio", Value: 80}, p.Entries[0])
	assert.Equal(t, PerformanceEntry{Kind: "energy", Label: "Energie", Value: 120}, p.Entries[1])
	assert.Equal(t, PerformanceEntry{Kind: "speed", Label: "Vitesse", Value: 200}, p.Entries[2])
	assert.Equal(t, PerformanceEntry{Kind: "intensity", Label: "Intensité", Value: 90}, p.Entries[3])

	series := p.Series()
	assert.Equal(t, []float64{80, 120, 200, 90}, series.Values())
	assert.False(t, series.HasSecondary())
}

func TestNormalizePerformance_UnknownKind(t *testing.T) {
	_, err := NormalizePerformance([]byte(`{"data":{"userId":1,"kind":{"1":"cardio"},"data":[{"value":80,"kind":9}]}}`))
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "unknown kind 9")
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Force", KindLabel("strength"))
	assert.Equal(t, "yoga", KindLabel("yoga"))
	assert.Equal(t, "J", WeekdayInitial(4))
	assert.Empty(t, WeekdayInitial(0))
	assert.Empty(t, WeekdayInitial(8))
}

func TestKeyData_Indicators(t *testing.T) {
	indicators := KeyData{CalorieCount: 1930, ProteinCount: 155, CarbohydrateCount: 290, LipidCount: 50}.Indicators()
	require.Len(t, indicators, 4)
	assert.Equal(t, "1930kCal", indicators[0].Display())
	assert.Equal(t, "Protéines", indicators[1].Name)
	assert.Equal(t, "50g", indicators[3].Display())
}
