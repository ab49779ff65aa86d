package sampleapi

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Generate builds a plausible dataset for any user id. The faker is seeded
// with the id, so the same id always yields the same user.
func Generate(userID int) Dataset {
	faker := gofakeit.New(int64(userID))

	main := UserMain{
		ID: userID,
		UserInfos: UserInfos{
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
			Age:       faker.Number(18, 70),
		},
		KeyData: KeyData{
			CalorieCount:      faker.Number(1200, 3500),
			ProteinCount:      faker.Number(40, 200),
			CarbohydrateCount: faker.Number(100, 400),
			LipidCount:        faker.Number(20, 150),
		},
	}
	todayScore := float64(faker.Number(0, 100)) / 100
	// odd ids come in the older payload revision
	if userID%2 == 1 {
		main.Score = &todayScore
	} else {
		main.TodayScore = &todayScore
	}

	start := time.Date(2020, time.July, faker.Number(1, 20), 0, 0, 0, 0, time.UTC)
	weight := faker.Number(50, 110)
	activity := UserActivity{UserID: userID}
	for i := 0; i < 7; i++ {
		activity.Sessions = append(activity.Sessions, ActivitySession{
			Day:      start.AddDate(0, 0, i).Format("2006-01-02"),
			Kilogram: weight + faker.Number(-2, 2),
			Calories: faker.Number(100, 550),
		})
	}

	sessions := UserAverageSessions{UserID: userID}
	for day := 1; day <= 7; day++ {
		sessions.Sessions = append(sessions.Sessions, AverageSession{
			Day:           day,
			SessionLength: faker.Number(0, 90),
		})
	}

	performance := UserPerformance{
		UserID: userID,
		Kind:   performanceKinds,
	}
	for kind := 1; kind <= len(performanceKinds); kind++ {
		performance.Data = append(performance.Data, PerformanceValue{
			Value: faker.Number(20, 250),
			Kind:  kind,
		})
	}

	return Dataset{
		Main:            main,
		Activity:        activity,
		AverageSessions: sessions,
		Performance:     performance,
	}
}

// Lookup returns the fixed dataset of a reference user, or a generated one.
func Lookup(userID int) (Dataset, error) {
	if userID <= 0 {
		return Dataset{}, fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}
	if ds, ok := FixedDatasets[userID]; ok {
		return ds, nil
	}
	return Generate(userID), nil
}
