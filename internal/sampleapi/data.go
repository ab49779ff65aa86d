package sampleapi

type UserInfos struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
}

type KeyData struct {
	CalorieCount      int `json:"calorieCount"`
	ProteinCount      int `json:"proteinCount"`
	CarbohydrateCount int `json:"carbohydrateCount"`
	LipidCount        int `json:"lipidCount"`
}

// UserMain is the main user payload. Exactly one of TodayScore and Score is
// set: some users still come in the older payload revision.
type UserMain struct {
	ID         int       `json:"id"`
	UserInfos  UserInfos `json:"userInfos"`
	TodayScore *float64  `json:"todayScore,omitempty"`
	Score      *float64  `json:"score,omitempty"`
	KeyData    KeyData   `json:"keyData"`
}

type ActivitySession struct {
	Day      string `json:"day"`
	Kilogram int    `json:"kilogram"`
	Calories int    `json:"calories"`
}

type UserActivity struct {
	UserID   int               `json:"userId"`
	Sessions []ActivitySession `json:"sessions"`
}

type AverageSession struct {
	Day           int `json:"day"`
	SessionLength int `json:"sessionLength"`
}

type UserAverageSessions struct {
	UserID   int              `json:"userId"`
	Sessions []AverageSession `json:"sessions"`
}

type PerformanceValue struct {
	Value int `json:"value"`
	Kind  int `json:"kind"`
}

type UserPerformance struct {
	UserID int                `json:"userId"`
	Kind   map[string]string  `json:"kind"`
	Data   []PerformanceValue `json:"data"`
}

// Dataset is everything the backend knows about one user.
type Dataset struct {
	Main            UserMain
	Activity        UserActivity
	AverageSessions UserAverageSessions
	Performance     UserPerformance
}

var performanceKinds = map[string]string{
	"1": "cardio",
	"2": "energy",
	"3": "endurance",
	"4": "strength",
	"5": "speed",
	"6": "intensity",
}

func score(v float64) *float64 {
	return &v
}

func weekSessions(kilograms, calories []int) []ActivitySession {
	sessions := make([]ActivitySession, len(kilograms))
	for i := range kilograms {
		sessions[i] = ActivitySession{
			Day:      "2020-07-0" + string(rune('1'+i)),
			Kilogram: kilograms[i],
			Calories: calories[i],
		}
	}
	return sessions
}

func averageSessions(lengths []int) []AverageSession {
	sessions := make([]AverageSession, len(lengths))
	for i, l := range lengths {
		sessions[i] = AverageSession{Day: i + 1, SessionLength: l}
	}
	return sessions
}

func performanceValues(values []int) []PerformanceValue {
	data := make([]PerformanceValue, len(values))
	for i, v := range values {
		data[i] = PerformanceValue{Value: v, Kind: i + 1}
	}
	return data
}

// FixedDatasets are the two reference users of the backend.
// User 18 still uses the legacy "score" key.
var FixedDatasets = map[int]Dataset{
	12: {
		Main: UserMain{
			ID:         12,
			UserInfos:  UserInfos{FirstName: "Karl", LastName: "Dovineau", Age: 31},
			TodayScore: score(0.12),
			KeyData:    KeyData{CalorieCount: 1930, ProteinCount: 155, CarbohydrateCount: 290, LipidCount: 50},
		},
		Activity: UserActivity{
			UserID:   12,
			Sessions: weekSessions([]int{80, 80, 81, 81, 80, 78, 76}, []int{240, 220, 280, 290, 160, 162, 390}),
		},
		AverageSessions: UserAverageSessions{
			UserID:   12,
			Sessions: averageSessions([]int{30, 23, 45, 50, 0, 0, 60}),
		},
		Performance: UserPerformance{
			UserID: 12,
			Kind:   performanceKinds,
			Data:   performanceValues([]int{80, 120, 140, 50, 200, 90}),
		},
	},
	18: {
		Main: UserMain{
			ID:        18,
			UserInfos: UserInfos{FirstName: "Cecilia", LastName: "Ratorez", Age: 34},
			Score:     score(0.3),
			KeyData:   KeyData{CalorieCount: 2500, ProteinCount: 90, CarbohydrateCount: 150, LipidCount: 120},
		},
		Activity: UserActivity{
			UserID:   18,
			Sessions: weekSessions([]int{70, 69, 70, 70, 69, 69, 69}, []int{240, 220, 280, 500, 160, 162, 390}),
		},
		AverageSessions: UserAverageSessions{
			UserID:   18,
			Sessions: averageSessions([]int{30, 40, 50, 30, 30, 50, 50}),
		},
		Performance: UserPerformance{
			UserID: 18,
			Kind:   performanceKinds,
			Data:   performanceValues([]int{200, 240, 80, 80, 220, 110}),
		},
	},
}
